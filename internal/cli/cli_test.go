package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/model"
)

type result struct {
	code     int
	out, err string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TADA_CONFIG", "")
	var out, errOut bytes.Buffer
	code := Run(context.Background(), append([]string{"--color", "never"}, args...), Options{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return result{code: code, out: out.String(), err: errOut.String()}
}

func decodeJSON(t *testing.T, s string) []model.Item {
	t.Helper()
	var l listing
	require.NoError(t, json.Unmarshal([]byte(s), &l), s)
	return l.Items
}

func TestNoArgsPrintsHelp(t *testing.T) {
	r := run(t, "")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.out, "Usage:")
}

func TestUnknownSubcommand(t *testing.T) {
	r := run(t, "", "frobnicate")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.err, "unknown command")
}

func TestEval(t *testing.T) {
	r := run(t, "", "eval", "-o", "json", "add buy milk", "add walk dog", "rm 1")
	require.Equal(t, ExitOK, r.code, r.err)

	want := []model.Item{{ID: "2", Text: "walk dog"}}
	if diff := cmp.Diff(want, decodeJSON(t, r.out)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalText(t *testing.T) {
	r := run(t, "", "--theme", "mono", "eval", "add buy milk")
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Contains(t, r.out, "Todos  Total 1")
	assert.Contains(t, r.out, "#1 buy milk")
}

func TestEvalYAMLEmpty(t *testing.T) {
	r := run(t, "", "eval", "-o", "yaml", "rm 9")
	require.Equal(t, ExitOK, r.code, r.err)

	var l listing
	require.NoError(t, yaml.Unmarshal([]byte(r.out), &l))
	assert.Empty(t, l.Items)
}

func TestEvalUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no intents", args: []string{"eval"}, want: "requires at least 1 arg"},
		{name: "blank add", args: []string{"eval", "add   "}, want: "add: empty text"},
		{name: "unknown verb", args: []string{"eval", "ad milk"}, want: `did you mean "add"?`},
		{name: "bad rm", args: []string{"eval", "rm 1 2"}, want: "usage: rm <id>"},
		{name: "bad format", args: []string{"eval", "-o", "xml", "add x"}, want: "unknown output format"},
		{name: "bad flag", args: []string{"eval", "--nope", "add x"}, want: "unknown flag"},
		{name: "bad scheme", args: []string{"--ids", "sequence", "eval", "add x"}, want: "unknown id scheme"},
		{name: "bad theme", args: []string{"--theme", "neno", "eval", "add x"}, want: "ui.theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			assert.Equal(t, ExitUsage, r.code)
			assert.Contains(t, r.err, tt.want)
		})
	}
}

func TestFlagsOverrideBadEnvironment(t *testing.T) {
	t.Setenv("TADA_IDS_SCHEME", "sequence")

	r := run(t, "", "eval", "add x")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.err, "unknown id scheme")

	r = run(t, "", "--ids", "counter", "eval", "-o", "json", "add x")
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Equal(t, []model.Item{{ID: "1", Text: "x"}}, decodeJSON(t, r.out))
}

func TestEvalUUIDScheme(t *testing.T) {
	r := run(t, "", "--ids", "uuid", "eval", "-o", "json", "add a", "add b")
	require.Equal(t, ExitOK, r.code, r.err)
	items := decodeJSON(t, r.out)
	require.Len(t, items, 2)
	assert.Len(t, string(items[0].ID), 36)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRunScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "01-start.todo", "add buy milk\nadd walk dog\n")
	writeScript(t, dir, "sub/02-more.yaml", "- type: ADD_TODO\n  payload: {text: call mom}\n- type: DELETE_TODO\n  payload: 1\n")

	r := run(t, "", "run", "-o", "json",
		filepath.Join(dir, "*.todo"),
		filepath.Join(dir, "sub", "**", "*.yaml"),
	)
	require.Equal(t, ExitOK, r.code, r.err)

	want := []model.Item{{ID: "2", Text: "walk dog"}, {ID: "3", Text: "call mom"}}
	if diff := cmp.Diff(want, decodeJSON(t, r.out)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRunWarnsOnUnknownIntent(t *testing.T) {
	dir := t.TempDir()
	p := writeScript(t, dir, "list.json", `[{"type":"add","text":"a"},{"type":"toggle","id":"1"}]`)

	r := run(t, "", "run", "-o", "json", p)
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Len(t, decodeJSON(t, r.out), 1)
	assert.Contains(t, r.err, "ignoring unknown intent")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeScript(t, dir, "bad.json", `{"not": "a list"}`)

	r := run(t, "", "run", bad)
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.err, "json unmarshal")

	r = run(t, "", "run", filepath.Join(dir, "missing.todo"))
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.err, "no scripts match")

	r = run(t, "", "run")
	assert.Equal(t, ExitUsage, r.code)
}

func TestConfigFileOutputFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := writeScript(t, dir, "config.yaml", "output:\n  format: yaml\n")

	r := run(t, "", "--config", cfg, "eval", "add x")
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Contains(t, r.out, "items:")
	assert.Contains(t, r.out, "text: x")
}

func TestVerboseLogsTransitions(t *testing.T) {
	r := run(t, "", "-v", "eval", "add x")
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Contains(t, r.err, "msg=dispatch")
	assert.Contains(t, r.err, "intent=add")
}

func TestRepl(t *testing.T) {
	input := strings.Join([]string{
		"add buy milk",
		"add walk dog",
		"# comment",
		"rm 1",
		"rm 1",
		"add",
		"toggle 2",
		"ls",
		"quit",
		"add never applied",
	}, "\n")

	r := run(t, input, "--theme", "mono", "repl")
	require.Equal(t, ExitOK, r.code, r.err)

	out := r.out
	assert.Contains(t, out, "ok added #1")
	assert.Contains(t, out, "ok added #2")
	assert.Contains(t, out, "ok removed #1")
	assert.Contains(t, out, "error: rm: no item #1")
	assert.Contains(t, out, "error: add: empty text")
	assert.Contains(t, out, `error: unknown intent "toggle"`)
	assert.Contains(t, out, "#2 walk dog")
	assert.NotContains(t, out, "never applied")
	assert.NotContains(t, out, "> ", "no prompt when output is not a terminal")
}

func TestReplHelpAndEOF(t *testing.T) {
	r := run(t, "help\n", "repl")
	require.Equal(t, ExitOK, r.code, r.err)
	assert.Contains(t, r.out, "add <text...>")
}
