package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnotes/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, config.ThemeLight, cfg.Theme)
	assert.Equal(t, config.DefaultSearchDebounce, cfg.SearchDebounce)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
}

func TestNew_SettingsFile(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()
	settings := "api_url: https://notes.example.com/\ntheme: dark\nsearch_debounce: 150ms\ntimeout: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600))

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://notes.example.com", cfg.APIURL)
	assert.Equal(t, config.ThemeDark, cfg.Theme)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("api_url: http://file\n"), 0600))
	t.Setenv(config.EnvAPIURL, "http://env")

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.APIURL)
}

func TestNew_InvalidSettings(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	cases := map[string]string{
		"theme":    "theme: purple\n",
		"debounce": "search_debounce: soon\n",
		"yaml":     "api_url: [unterminated\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(body), 0600))
			_, err := config.New(dir)
			assert.Error(t, err)
		})
	}
}

func TestSaveTheme_KeepsOtherSettings(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("api_url: http://kept\n"), 0600))

	cfg, err := config.New(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.SaveTheme(config.ThemeDark))
	assert.Equal(t, config.ThemeDark, cfg.Theme)

	reloaded, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, config.ThemeDark, reloaded.Theme)
	assert.Equal(t, "http://kept", reloaded.APIURL)

	assert.Error(t, cfg.SaveTheme("sepia"))
}

func TestTokenStore_Lifecycle(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}
	tokens := cfg.Tokens()

	tok, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, cfg.HasToken())

	require.NoError(t, tokens.Save("abc123"))
	assert.True(t, cfg.HasToken())

	info, err := os.Stat(cfg.TokenPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	tok, err = tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, tokens.Clear())
	assert.False(t, cfg.HasToken())
	require.NoError(t, tokens.Clear())
}
