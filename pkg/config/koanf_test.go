package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/types"
)

// isolate points the XDG config directories at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "system"))
	t.Setenv("HIGHLIGHT_THEME", "")
	os.Unsetenv("HIGHLIGHT_THEME")
	t.Setenv("HIGHLIGHT_TRUE_COLORS", "")
	os.Unsetenv("HIGHLIGHT_TRUE_COLORS")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	t.Run("defaults_only", func(t *testing.T) {
		isolate(t)

		s, err := Load(Options{})
		require.NoError(t, err)

		_, ok := s.Lookup(KeyTheme)
		assert.False(t, ok, "defaults must not set a theme")
		_, ok = s.Lookup(KeyTrueColors)
		assert.False(t, ok, "defaults must not set true_colors")
		assert.Empty(t, s.Keys())

		_, ok = s.Env("HIGHLIGHT_THEME")
		assert.False(t, ok)
	})

	t.Run("user_config_from_xdg", func(t *testing.T) {
		dir := isolate(t)
		userPath := filepath.Join(dir, "highlight", "config.toml")
		writeFile(t, userPath, "theme = \"dracula\"\ntrue_colors = false\n")

		s, err := Load(Options{})
		require.NoError(t, err)

		v, ok := s.Lookup(KeyTheme)
		require.True(t, ok)
		assert.Equal(t, "dracula", v.Raw)
		assert.Equal(t, types.SourceConfig, v.Span.Kind)
		assert.Equal(t, userPath, v.Span.File)
		assert.Equal(t, KeyTheme, v.Span.Key)

		v, ok = s.Lookup(KeyTrueColors)
		require.True(t, ok)
		assert.Equal(t, false, v.Raw)
	})

	t.Run("skip_user_config", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "highlight", "config.toml"), "theme = \"dracula\"\n")

		s, err := Load(Options{SkipUserConfig: true})
		require.NoError(t, err)

		_, ok := s.Lookup(KeyTheme)
		assert.False(t, ok)
	})

	t.Run("explicit_config_overrides_user_config", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "highlight", "config.toml"), "theme = \"dracula\"\ntrue_colors = false\n")
		explicit := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, explicit, "theme: nord\n")

		s, err := Load(Options{ConfigPath: explicit})
		require.NoError(t, err)

		v, ok := s.Lookup(KeyTheme)
		require.True(t, ok)
		assert.Equal(t, "nord", v.Raw)
		assert.Equal(t, explicit, v.Span.File)

		v, ok = s.Lookup(KeyTrueColors)
		require.True(t, ok)
		assert.Equal(t, false, v.Raw)
	})

	t.Run("missing_explicit_config", func(t *testing.T) {
		isolate(t)

		_, err := Load(Options{ConfigPath: filepath.Join(t.TempDir(), "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.ini")
		writeFile(t, path, "theme=x\n")

		_, err := Load(Options{ConfigPath: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed_config", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "theme = [unterminated\n")

		_, err := Load(Options{ConfigPath: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("environment_layer", func(t *testing.T) {
		isolate(t)
		t.Setenv("HIGHLIGHT_THEME", "nord")
		t.Setenv("HIGHLIGHT_TRUE_COLORS", "no")
		t.Setenv("HIGHLIGHT_UNRELATED", "x")

		s, err := Load(Options{})
		require.NoError(t, err)

		v, ok := s.Env("HIGHLIGHT_THEME")
		require.True(t, ok)
		assert.Equal(t, "nord", v.Raw)
		assert.Equal(t, types.SourceEnv, v.Span.Kind)
		assert.Equal(t, "HIGHLIGHT_THEME", v.Span.Key)

		v, ok = s.Env("HIGHLIGHT_TRUE_COLORS")
		require.True(t, ok)
		assert.Equal(t, "no", v.Raw)

		_, ok = s.Env("HIGHLIGHT_UNRELATED")
		assert.False(t, ok)

		// The environment never leaks into the configuration view
		_, ok = s.Lookup(KeyTheme)
		assert.False(t, ok)
	})

	t.Run("skip_env", func(t *testing.T) {
		isolate(t)
		t.Setenv("HIGHLIGHT_THEME", "nord")

		s, err := Load(Options{SkipEnv: true})
		require.NoError(t, err)

		_, ok := s.Env("HIGHLIGHT_THEME")
		assert.False(t, ok)
	})
}

func TestFromMap(t *testing.T) {
	s, err := FromMap(
		map[string]interface{}{"theme": "nord", "true_colors": true},
		map[string]string{
			"HIGHLIGHT_THEME":       "dracula",
			"HIGHLIGHT_TRUE_COLORS": "\xff\xfe",
			"PATH":                  "/bin",
		},
	)
	require.NoError(t, err)

	v, ok := s.Lookup(KeyTheme)
	require.True(t, ok)
	assert.Equal(t, "nord", v.Raw)
	assert.Equal(t, "", v.Span.File)
	assert.Equal(t, "config field theme", v.Span.String())

	v, ok = s.Lookup(KeyTrueColors)
	require.True(t, ok)
	assert.Equal(t, true, v.Raw)

	v, ok = s.Env("HIGHLIGHT_THEME")
	require.True(t, ok)
	assert.Equal(t, "dracula", v.Raw)

	v, ok = s.Env("HIGHLIGHT_TRUE_COLORS")
	require.True(t, ok)
	assert.Equal(t, types.InvalidText("\xff\xfe"), v.Raw)

	_, ok = s.Env("PATH")
	assert.False(t, ok)
}

func TestFromMapEmpty(t *testing.T) {
	s, err := FromMap(nil, nil)
	require.NoError(t, err)

	_, ok := s.Lookup(KeyTheme)
	assert.False(t, ok)
	assert.Empty(t, s.Keys())
	assert.Equal(t, "", s.CustomThemesPath())
}

func TestNilSources(t *testing.T) {
	var s *Sources

	_, ok := s.Lookup(KeyTheme)
	assert.False(t, ok)
	_, ok = s.Env("HIGHLIGHT_THEME")
	assert.False(t, ok)
	assert.Equal(t, "", s.CustomThemesPath())
	assert.Empty(t, s.Keys())
}

func TestCustomThemesPath(t *testing.T) {
	t.Run("relative_to_config_file", func(t *testing.T) {
		isolate(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		writeFile(t, path, "custom_themes = \"themes/extra.yaml\"\n")

		s, err := Load(Options{ConfigPath: path})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "themes", "extra.yaml"), s.CustomThemesPath())
	})

	t.Run("home_expansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		s, err := FromMap(map[string]interface{}{"custom_themes": "~/themes.xml"}, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "themes.xml"), s.CustomThemesPath())
	})

	t.Run("absolute", func(t *testing.T) {
		s, err := FromMap(map[string]interface{}{"custom_themes": "/etc/highlight/themes.toml"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/etc/highlight/themes.toml", s.CustomThemesPath())
	})
}

func TestDefaultConfigContent(t *testing.T) {
	assert.Contains(t, DefaultConfigContent(), "custom_themes")
}
