package config

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// LocaleConfig enables multi-locale content resolution. A nil LocaleConfig
// disables all locale-specific behavior (single-locale mode).
type LocaleConfig struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
	// PrefixDefault forces the locale prefix on slugs even for the default
	// locale.
	PrefixDefault bool `yaml:"prefix_default,omitempty"`
}

// Validate checks that every configured locale is a well-formed BCP 47 tag
// and that the default locale is among them.
func (l *LocaleConfig) Validate() error {
	if l.DefaultLocale == "" {
		return fmt.Errorf("default_locale is required")
	}
	if len(l.Locales) == 0 {
		return fmt.Errorf("at least one locale is required")
	}
	for _, code := range l.Locales {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("invalid locale %q: %w", code, err)
		}
	}
	if !slices.Contains(l.Locales, l.DefaultLocale) {
		return fmt.Errorf("default_locale %q is not in locales", l.DefaultLocale)
	}
	return nil
}

// Has reports whether code is a configured locale.
func (l *LocaleConfig) Has(code string) bool {
	if l == nil {
		return false
	}
	return slices.Contains(l.Locales, code)
}

// IsDefault reports whether code is the configured default locale.
func (l *LocaleConfig) IsDefault(code string) bool {
	return l != nil && code == l.DefaultLocale
}
