package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NormalizeLanguage parses a BCP 47 tag and returns its base language code,
// so "hi-IN" and "HI" both become "hi".
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("empty language code")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// LanguageName returns the English display name of a language code, or the
// code itself when it cannot be parsed.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// baseLanguage is NormalizeLanguage without the error
func baseLanguage(code string) string {
	base, err := NormalizeLanguage(code)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(code))
	}
	return base
}
