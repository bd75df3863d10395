package highlight

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/types"
)

// isolate points the XDG directories at temporary folders and clears the
// HIGHLIGHT_* variables
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HIGHLIGHT_THEME", "")
	t.Setenv("HIGHLIGHT_TRUE_COLORS", "")
	require.NoError(t, os.Unsetenv("HIGHLIGHT_THEME"))
	require.NoError(t, os.Unsetenv("HIGHLIGHT_TRUE_COLORS"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

type execResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestHighlightStdin(t *testing.T) {
	isolate(t)
	input := "[server]\nport = 8080\n"

	res := run(t, input, "toml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\x1b[")
	assert.Equal(t, input, ansi.Strip(res.stdout))
}

func TestHighlightTextOutput(t *testing.T) {
	isolate(t)

	res := run(t, "package main\n", "go", "--output", "text")
	require.NoError(t, res.err)
	assert.Equal(t, "package main\n", res.stdout)
}

func TestHighlightFileSetsSourcePath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0644))

	res := run(t, "", "--file", path, "-o", "json")
	require.NoError(t, res.err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "Python", got["grammar"])
	assert.Equal(t, "monokai", got["theme"])
}

func TestHighlightContentType(t *testing.T) {
	isolate(t)

	res := run(t, "a: 1\n", "--content-type", "application/x-yaml", "-o", "json")
	require.NoError(t, res.err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "YAML", got["grammar"])
}

func TestListThemes(t *testing.T) {
	isolate(t)

	res := run(t, "", "--list-themes", "--theme", "nord", "-o", "json")
	require.NoError(t, res.err)

	var list []types.ThemeDescription
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &list))
	require.NotEmpty(t, list)

	var defaults []types.ThemeID
	for _, d := range list {
		if d.Default {
			defaults = append(defaults, d.ID)
		}
	}
	assert.Equal(t, []types.ThemeID{"nord"}, defaults)
}

func TestListThemesTable(t *testing.T) {
	isolate(t)

	res := run(t, "", "-l")
	require.NoError(t, res.err)
	out := ansi.Strip(res.stdout)
	assert.Contains(t, out, "monokai")
	assert.Contains(t, out, "dracula")
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	themesDir := filepath.Join(dir, "themes")
	require.NoError(t, os.MkdirAll(themesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, "sunset.yaml"), []byte(
		"id: sunset\nname: Sunset\nentries:\n  Keyword: \"bold #ff8800\"\n"), 0644))

	cfg := filepath.Join(dir, "highlight.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("theme = \"sunset\"\ncustom_themes = \"themes\"\n"), 0644))

	res := run(t, "package main\n", "go", "--config", cfg)
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "\x1b[38;2;255;136;0;1mpackage"), "got %q", res.stdout)
}

func TestUserConfig(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "highlight")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("true_colors: false\n"), 0644))

	res := run(t, "package main\n", "go")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "38;2;")
}

func TestEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("HIGHLIGHT_THEME", "dracula")

	res := run(t, "x = 1\n", "python", "-o", "json")
	require.NoError(t, res.err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "dracula", got["theme"])
}

func TestErrorsAreReported(t *testing.T) {
	t.Run("unknown theme", func(t *testing.T) {
		isolate(t)
		res := run(t, "x", "--theme", "no-such-theme", "-o", "text")
		require.Error(t, res.err)
		assert.True(t, IsReported(res.err))
		assert.True(t, errors.IsErrorCode(res.err, errors.ErrUnknownTheme))
		assert.Contains(t, res.stderr, "at flag --theme: unknown theme")
		assert.Empty(t, res.stdout)
	})

	t.Run("json error", func(t *testing.T) {
		isolate(t)
		t.Setenv("HIGHLIGHT_TRUE_COLORS", "maybe")
		res := run(t, "x", "-o", "json")
		require.Error(t, res.err)

		var got map[string]errors.Report
		require.NoError(t, json.Unmarshal([]byte(res.stderr), &got))
		assert.Equal(t, errors.ErrUnparsableSetting, got["error"].Code)
		assert.Equal(t, "environment variable HIGHLIGHT_TRUE_COLORS", got["error"].Location)
	})

	t.Run("missing config file", func(t *testing.T) {
		dir := isolate(t)
		res := run(t, "x", "--config", filepath.Join(dir, "missing.toml"))
		require.Error(t, res.err)
		assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigLoad))
	})

	t.Run("missing input file", func(t *testing.T) {
		dir := isolate(t)
		res := run(t, "", "--file", filepath.Join(dir, "missing.txt"))
		require.Error(t, res.err)
		assert.True(t, IsReported(res.err))
	})

	t.Run("invalid output format", func(t *testing.T) {
		isolate(t)
		res := run(t, "x", "-o", "html")
		require.Error(t, res.err)
		assert.False(t, IsReported(res.err))
		assert.Contains(t, res.err.Error(), "unknown format: html")
	})

	t.Run("too many arguments", func(t *testing.T) {
		isolate(t)
		res := run(t, "x", "go", "python")
		require.Error(t, res.err)
	})
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "highlight version dev\n"))
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	res := run(t, "", "help", "topics")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "  config\n  languages\n  themes\n")

	res = run(t, "", "help", "languages")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "shebang")
}

func TestCompletion(t *testing.T) {
	isolate(t)

	names, _ := languageCompletion(NewRootCmd(), nil, "tom")
	assert.Contains(t, names, "toml")

	ids, _ := themeCompletion(NewRootCmd(), nil, "mono")
	assert.Contains(t, ids, "monokai")
	for _, id := range ids {
		assert.True(t, strings.HasPrefix(id, "mono"))
	}

	res := run(t, "", "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "highlight")
}
