package deck

import (
	"encoding"
	"fmt"
	"strings"
)

// Language selects which side of a bilingual record is shown.
type Language int

const (
	English Language = iota + 1 // Language A, fields suffixed _en.
	French                      // Language B, fields suffixed _fr.
)

var (
	languageCodes  = [...]string{English: "en", French: "fr"}
	languageNames  = [...]string{English: "English", French: "Français"}
	languageByCode = map[string]Language{
		"en": English,
		"fr": French,
	}
)

var (
	_ fmt.Stringer             = Language(0)
	_ encoding.TextMarshaler   = Language(0)
	_ encoding.TextUnmarshaler = (*Language)(nil)
)

// ParseLanguage returns the language for a code ("en", "fr"), ignoring case
// and surrounding space.
func ParseLanguage(code string) (Language, error) {
	var l Language
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(code)))); err != nil {
		return 0, err
	}
	return l, nil
}

// IsValid reports whether l is English or French.
func (l Language) IsValid() bool {
	return l >= English && l <= French
}

// String returns the language code ("en", "fr").
// For invalid values it returns "Language(n)".
func (l Language) String() string {
	if l.IsValid() {
		return languageCodes[l]
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// Name returns the language's own name, as shown on a language toggle.
func (l Language) Name() string {
	if l.IsValid() {
		return languageNames[l]
	}
	return l.String()
}

// Toggle returns the other language. Invalid values toggle to English.
func (l Language) Toggle() Language {
	if l == English {
		return French
	}
	return English
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLanguage, int(l))
	}
	return []byte(languageCodes[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	v, ok := languageByCode[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, text)
	}
	*l = v
	return nil
}
