package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/spelling/pkg/words"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// writeConfig creates a config file pointing the given backend at a temp dir.
func writeConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "spelling.db")
	if backend == "file" {
		storePath = filepath.Join(dir, "words.json")
	}
	cfg := fmt.Sprintf("storage:\n  backend: %s\n  path: %s\nlog:\n  level: error\n", backend, storePath)
	path := filepath.Join(dir, "spelling.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func runCLI(t *testing.T, cfgPath, stdin string, args ...string) cliResult {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, cfgPath string)) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			fn(t, writeConfig(t, backend))
		})
	}
}

func TestCLI_AddAndView(t *testing.T) {
	forEachBackend(t, func(t *testing.T, cfg string) {
		res := runCLI(t, cfg, "", "add", "--week", "2", "because", "friend", "said")
		require.NoError(t, res.err)
		assert.Equal(t, "Words added! 🎉: Added 3 words to week 2.\n", res.stdout)

		res = runCLI(t, cfg, "", "add", "-w", "5", "again")
		require.NoError(t, res.err)

		res = runCLI(t, cfg, "", "view")
		require.NoError(t, res.err)
		assert.Equal(t, "Week 5\nWeek 2\n", res.stdout)

		res = runCLI(t, cfg, "", "weeks")
		require.NoError(t, res.err)
		assert.Equal(t, "5\n2\n", res.stdout)

		res = runCLI(t, cfg, "", "view", "--week", "2")
		require.NoError(t, res.err)
		lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Week 2 Words", lines[0])
		assert.Equal(t, []string{"because", "friend"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"said"}, strings.Fields(lines[2]))
	})
}

func TestCLI_ViewEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, cfg string) {
		res := runCLI(t, cfg, "", "view")
		require.NoError(t, res.err)
		assert.Equal(t, noWordsYet+"\n", res.stdout)
	})
}

func TestCLI_ViewUnknownWeek(t *testing.T) {
	cfg := writeConfig(t, "file")
	require.NoError(t, runCLI(t, cfg, "", "add", "-w", "1", "cat").err)

	res := runCLI(t, cfg, "", "view", "-w", "99")
	require.NoError(t, res.err)
	assert.Equal(t, "Week 99 Words\nNo words for week 99.\n", res.stdout)
}

func TestCLI_AddValidation(t *testing.T) {
	cfg := writeConfig(t, "sqlite")

	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantNotes string
	}{
		{name: "missing week", args: []string{"add", "cat"}, wantNotes: "Oops!: Please enter a week number and some words."},
		{name: "missing words", args: []string{"add", "--week", "1"}, wantNotes: "Oops!"},
		{name: "blank stdin", stdin: "  \n\n", args: []string{"add", "--week", "1", "--file", "-"}, wantNotes: "Oops!"},
		{name: "bad week", args: []string{"add", "--week", "two", "cat"}, wantNotes: words.MsgBadWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, cfg, tt.stdin, tt.args...)
			require.Error(t, res.err)
			var r *reportedError
			assert.True(t, errors.As(res.err, &r))
			assert.ErrorIs(t, res.err, words.ErrValidation)
			assert.Contains(t, res.stderr, tt.wantNotes)
			assert.Empty(t, res.stdout)
		})
	}

	res := runCLI(t, cfg, "", "view")
	require.NoError(t, res.err)
	assert.Equal(t, noWordsYet+"\n", res.stdout, "failed adds must not store anything")
}

func TestCLI_AddFromStdinAndFile(t *testing.T) {
	cfg := writeConfig(t, "file")

	res := runCLI(t, cfg, "one\n\n  two  \n", "add", "--week", "1", "--file", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added 2 words to week 1.")

	list := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("three\r\nfour\r\n"), 0o644))
	res = runCLI(t, cfg, "", "add", "--week", "1", "--file", list, "five")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added 3 words to week 1.")

	res = runCLI(t, cfg, "", "export")
	require.NoError(t, res.err)
	entries, err := words.ReadBackup(strings.NewReader(res.stdout))
	require.NoError(t, err)
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Word
	}
	assert.Equal(t, []string{"one", "two", "five", "three", "four"}, got)
}

func TestCLI_AddFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><body><nav><ul><li>Home</li></ul></nav><main><ul><li>island</li><li>knight</li></ul></main></body></html>`)
	}))
	defer srv.Close()

	cfg := writeConfig(t, "sqlite")
	res := runCLI(t, cfg, "", "add", "--week", "7", "--url", srv.URL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added 2 words to week 7.")

	res = runCLI(t, cfg, "", "view", "--week", "7")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "island")
	assert.Contains(t, res.stdout, "knight")
	assert.NotContains(t, res.stdout, "Home")
}

func TestCLI_AddFromURLFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := writeConfig(t, "file")
	res := runCLI(t, cfg, "", "add", "--week", "1", "--url", srv.URL)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Something went wrong")
}

func TestCLI_Test(t *testing.T) {
	forEachBackend(t, func(t *testing.T, cfg string) {
		nine := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
		require.NoError(t, runCLI(t, cfg, "", append([]string{"add", "-w", "1"}, nine...)...).err)

		res := runCLI(t, cfg, "", "test")
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, words.ErrInsufficientData)
		assert.Equal(t, "Need more words: You need at least 10 words to generate a test.\n", res.stderr)

		require.NoError(t, runCLI(t, cfg, "", "add", "-w", "2", "j").err)

		res = runCLI(t, cfg, "", "test")
		require.NoError(t, res.err)
		lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
		require.Len(t, lines, 12)
		assert.Equal(t, "Test ready! ✨: Here are 10 random words to practice.", lines[0])
		assert.Equal(t, "Your Test Words", lines[1])

		var got []string
		for i, line := range lines[2:] {
			prefix := fmt.Sprintf("%d. ", i+1)
			require.True(t, strings.HasPrefix(line, prefix), line)
			got = append(got, strings.TrimPrefix(line, prefix))
		}
		slices.Sort(got)
		assert.Equal(t, append(nine, "j"), got)
	})
}

func TestCLI_TestCountFlag(t *testing.T) {
	cfg := writeConfig(t, "file")
	require.NoError(t, runCLI(t, cfg, "", "add", "-w", "1", "a", "b", "c").err)

	res := runCLI(t, cfg, "", "test", "--count", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Here are 2 random words to practice.")
	assert.Contains(t, res.stdout, "2. ")
	assert.NotContains(t, res.stdout, "3. ")
}

func TestCLI_TestCountHelpHasNoLiteralDefault(t *testing.T) {
	res := runCLI(t, writeConfig(t, "file"), "", "test", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "default test.size from config")
	assert.NotContains(t, res.stdout, "(default 10)")
}

func TestCLI_TestUsesConfiguredSize(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "spelling.yaml")
	cfg := fmt.Sprintf("storage:\n  backend: file\n  path: %s\ntest:\n  size: 3\nlog:\n  level: error\n", filepath.Join(dir, "words.json"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	require.NoError(t, runCLI(t, cfgPath, "", "add", "-w", "1", "a", "b", "c").err)

	res := runCLI(t, cfgPath, "", "test")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Here are 3 random words to practice.")
}

func TestCLI_ExportImport(t *testing.T) {
	src := writeConfig(t, "sqlite")
	require.NoError(t, runCLI(t, src, "", "add", "-w", "1", "cat", "dog").err)
	require.NoError(t, runCLI(t, src, "", "add", "-w", "2", "bird").err)

	backup := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, runCLI(t, src, "", "export", "--out", backup).err)

	dst := writeConfig(t, "file")
	res := runCLI(t, dst, "", "import", backup)
	require.NoError(t, res.err)
	assert.Equal(t, "Words restored: Restored 3 words from backup.\n", res.stdout)

	res = runCLI(t, dst, "", "weeks")
	require.NoError(t, res.err)
	assert.Equal(t, "2\n1\n", res.stdout)
}

func TestCLI_ExportFailureRendersNotice(t *testing.T) {
	cfg := writeConfig(t, "file")
	require.NoError(t, runCLI(t, cfg, "", "add", "-w", "1", "cat").err)

	out := filepath.Join(t.TempDir(), "missing-dir", "backup.json")
	res := runCLI(t, cfg, "", "export", "--out", out)
	require.Error(t, res.err)
	var r *reportedError
	assert.True(t, errors.As(res.err, &r))
	assert.Contains(t, res.stderr, "Something went wrong: create backup:")
}

func TestCLI_ImportInvalid(t *testing.T) {
	cfg := writeConfig(t, "file")
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nope": true}`), 0o644))

	res := runCLI(t, cfg, "", "import", bad)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Something went wrong")
}

func TestCLI_CorruptFileSlotStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(storePath, []byte(`{"broken": `), 0o644))
	cfgPath := filepath.Join(dir, "spelling.yaml")
	cfg := fmt.Sprintf("storage:\n  backend: file\n  path: %s\nlog:\n  level: error\n", storePath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	res := runCLI(t, cfgPath, "", "view")
	require.NoError(t, res.err)
	assert.Equal(t, noWordsYet+"\n", res.stdout)

	require.NoError(t, runCLI(t, cfgPath, "", "add", "-w", "1", "fresh").err)
	data, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"word":"fresh","week":1}]`, string(data))
}

func TestCLI_InvalidLogLevelFlag(t *testing.T) {
	res := runCLI(t, writeConfig(t, "file"), "", "--log-level", "bogus", "view")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "log.level")
	assert.Empty(t, res.stdout)

	res = runCLI(t, writeConfig(t, "file"), "", "--log-level", "debug", "view")
	require.NoError(t, res.err)
}

func TestCLI_MissingConfigFile(t *testing.T) {
	res := runCLI(t, filepath.Join(t.TempDir(), "nope.yaml"), "", "view")
	assert.Error(t, res.err)
}

func TestCLI_Version(t *testing.T) {
	res := runCLI(t, writeConfig(t, "file"), "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "spelling version "+Version+"\n", res.stdout)
}
