package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/model"
)

func plain(t *testing.T, theme string) {
	t.Helper()
	require.NoError(t, SetColorMode("never", nil))
	SetTheme(theme)
	t.Cleanup(func() { SetTheme("classic") })
}

func TestLines(t *testing.T) {
	plain(t, "classic")

	st := model.State{Items: []model.Item{
		{ID: "1", Text: "buy milk"},
		{ID: "2", Text: strings.Repeat("x", 100)},
	}}
	lines := Lines(st, 40)
	require.Len(t, lines, 2)
	assert.Equal(t, "• #1 buy milk", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "..."))
	assert.LessOrEqual(t, len([]rune(lines[1])), 40)
}

func TestLinesEmpty(t *testing.T) {
	plain(t, "mono")
	assert.Equal(t, []string{"no items"}, Lines(model.Empty(), 80))
}

func TestSnapshotPanel(t *testing.T) {
	plain(t, "mono")

	var buf bytes.Buffer
	Snapshot(&buf, model.State{Items: []model.Item{{ID: "7", Text: "walk dog"}}})

	out := buf.String()
	assert.Contains(t, out, "Todos  Total 1")
	assert.Contains(t, out, "- #7 walk dog")
	assert.True(t, strings.HasPrefix(out, "┌"), "mono uses the normal border: %q", out)
}

func TestOKFail(t *testing.T) {
	plain(t, "classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	assert.Equal(t, "✔ added\n✖ boom\n", buf.String())
}

func TestSetColorMode(t *testing.T) {
	require.Error(t, SetColorMode("sometimes", nil))
	require.NoError(t, SetColorMode("auto", &bytes.Buffer{}))
	t.Cleanup(func() { _ = SetColorMode("never", nil) })
}

func TestWidthFallsBack(t *testing.T) {
	assert.Equal(t, 80, Width(&bytes.Buffer{}))
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
	assert.Equal(t, 80, Width(f))
}
