package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MinimalConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "content_dir: ./content\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./content", cfg.ContentDir)
	require.Equal(t, ModeProduction, cfg.Mode)
	require.Equal(t, DefaultTTL, cfg.Cache.TTL.Std())
	require.Equal(t, DefaultDevTTL, cfg.Cache.DevTTL.Std())
	require.Equal(t, DefaultServeAddr, cfg.Serve.Addr)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Nil(t, cfg.Locale)
}

func TestLoad_MissingContentDir_ReturnsError(t *testing.T) {
	path := writeConfig(t, "mode: dev\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "content_dir")
}

func TestLoad_FullConfig_ParsesAllSections(t *testing.T) {
	path := writeConfig(t, `
content_dir: /srv/docs
mode: development
locale:
  default_locale: en
  locales: [en, fr]
  prefix_default: true
cache:
  ttl: 10m
  dev_ttl: 1s
  watch: true
security:
  strict: true
  block_dangerous: true
sidebar:
  untagged_in_first_tab: false
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ModeDevelopment, cfg.Mode)
	require.True(t, cfg.Interactive())
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL.Std())
	require.Equal(t, time.Second, cfg.Cache.DevTTL.Std())
	require.Equal(t, time.Second, cfg.EffectiveTTL())
	require.True(t, cfg.Cache.Watch)
	require.True(t, cfg.Security.Strict)
	require.True(t, cfg.Locale.PrefixDefault)
	require.False(t, cfg.Sidebar.UntaggedInFirstTabEnabled())
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("DOCSITE_TEST_CONTENT", "/var/docs")
	path := writeConfig(t, "content_dir: ${DOCSITE_TEST_CONTENT}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/docs", cfg.ContentDir)
}

func TestNormalizeMode_Aliases(t *testing.T) {
	require.Equal(t, ModeDevelopment, NormalizeMode("dev"))
	require.Equal(t, ModeDevelopment, NormalizeMode(" Development "))
	require.Equal(t, ModeProduction, NormalizeMode("prod"))
	require.Equal(t, ModeProduction, NormalizeMode(""))
	require.Equal(t, ModeProduction, NormalizeMode("bogus"))
}

func TestLocaleConfig_Validate(t *testing.T) {
	valid := &LocaleConfig{DefaultLocale: "en", Locales: []string{"en", "fr"}}
	require.NoError(t, valid.Validate())

	missingDefault := &LocaleConfig{Locales: []string{"en"}}
	require.Error(t, missingDefault.Validate())

	badTag := &LocaleConfig{DefaultLocale: "en", Locales: []string{"en", "not a tag"}}
	require.Error(t, badTag.Validate())

	defaultNotListed := &LocaleConfig{DefaultLocale: "de", Locales: []string{"en", "fr"}}
	require.Error(t, defaultNotListed.Validate())
}

func TestLocaleConfig_HasAndIsDefault(t *testing.T) {
	var nilCfg *LocaleConfig
	require.False(t, nilCfg.Has("en"))
	require.False(t, nilCfg.IsDefault("en"))

	cfg := &LocaleConfig{DefaultLocale: "en", Locales: []string{"en", "fr"}}
	require.True(t, cfg.Has("fr"))
	require.False(t, cfg.Has("de"))
	require.True(t, cfg.IsDefault("en"))
	require.False(t, cfg.IsDefault("fr"))
}

func TestSidebarConfig_UntaggedInFirstTab_DefaultsTrue(t *testing.T) {
	require.True(t, SidebarConfig{}.UntaggedInFirstTabEnabled())
}
