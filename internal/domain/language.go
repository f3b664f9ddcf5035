package domain

import (
	"fmt"
	"strings"
)

// Language is a supported interface language code
type Language string

const (
	LanguageRussian  Language = "ru"
	LanguageEnglish  Language = "en"
	LanguageChinese  Language = "zh"
	LanguageKorean   Language = "ko"
	LanguageTurkish  Language = "tr"
	LanguageJapanese Language = "ja"
)

// DefaultLanguage is used for users that never picked a language
const DefaultLanguage = LanguageEnglish

// SupportedLanguages lists every language in the order it is offered to users
var SupportedLanguages = []Language{
	LanguageRussian,
	LanguageEnglish,
	LanguageChinese,
	LanguageKorean,
	LanguageTurkish,
	LanguageJapanese,
}

// ParseLanguage converts a raw code into a supported Language
func ParseLanguage(code string) (Language, bool) {
	lang := Language(code)
	if lang.Supported() {
		return lang, true
	}
	return "", false
}

// Supported reports whether the language belongs to the fixed set
func (l Language) Supported() bool {
	for _, s := range SupportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// CheckTranslations verifies that a localized map covers exactly the
// supported languages with non-empty values.
func CheckTranslations(m map[Language]string) error {
	for lang := range m {
		if !lang.Supported() {
			return fmt.Errorf("%w %q", ErrUnsupportedLanguage, lang)
		}
	}
	var missing []string
	for _, lang := range SupportedLanguages {
		if strings.TrimSpace(m[lang]) == "" {
			missing = append(missing, string(lang))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing translations: %s", strings.Join(missing, ", "))
	}
	return nil
}
