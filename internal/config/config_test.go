package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TADA_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "counter", c.IDs.Scheme)
	assert.Equal(t, "classic", c.UI.Theme)
	assert.Equal(t, "auto", c.UI.Color)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Output.Format)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tada.yaml")
	body := "ids:\n  scheme: uuid\nui:\n  theme: neon\n  color: never\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "uuid", c.IDs.Scheme)
	assert.Equal(t, "neon", c.UI.Theme)
	assert.Equal(t, "never", c.UI.Color)
}

func TestLoadHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TADA_CONFIG", "")
	dir := filepath.Join(home, ".config", "tada")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  theme: mono\n"), 0o644))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mono", c.UI.Theme)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TADA_IDS_SCHEME", "random")
	t.Setenv("TADA_OUTPUT_FORMAT", "json")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "random", c.IDs.Scheme)
	assert.Equal(t, "json", c.Output.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{name: "scheme", env: "TADA_IDS_SCHEME", val: "sequence"},
		{name: "theme", env: "TADA_UI_THEME", val: "neno"},
		{name: "color", env: "TADA_UI_COLOR", val: "sometimes"},
		{name: "format", env: "TADA_OUTPUT_FORMAT", val: "xml"},
		{name: "level", env: "TADA_LOG_LEVEL", val: "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestReadLeavesValidationToCaller(t *testing.T) {
	isolate(t)
	t.Setenv("TADA_IDS_SCHEME", "sequence")

	c, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "sequence", c.IDs.Scheme)
	assert.Error(t, c.Validate())

	c.IDs.Scheme = "counter"
	assert.NoError(t, c.Validate())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}
