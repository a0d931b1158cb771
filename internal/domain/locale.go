package domain

import (
	"os"
	"strings"
)

// FallbackLocale is used when neither config nor environment name a locale
const FallbackLocale = "en-US"

// DefaultLocale returns the system default locale as a BCP 47 tag.
// LC_ALL wins over LANG; "pt_BR.UTF-8" becomes "pt-BR".
func DefaultLocale() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if locale := NormalizeLocale(os.Getenv(key)); locale != "" {
			return locale
		}
	}
	return FallbackLocale
}

// NormalizeLocale strips encoding and modifier suffixes and swaps "_" for "-".
// POSIX "C" locales normalize to the empty string.
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}
