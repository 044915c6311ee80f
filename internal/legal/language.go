package legal

import (
	"strings"
	"unicode"
)

// Supported response languages.
const (
	LanguageEnglish = "en"
	LanguageNepali  = "ne"
)

// DetectLanguage returns LanguageNepali when Devanagari letters make up at
// least half of the letters in text, and LanguageEnglish otherwise.
func DetectLanguage(text string) string {
	var devanagari, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Devanagari, r) {
			devanagari++
		}
	}
	if letters > 0 && devanagari*2 >= letters {
		return LanguageNepali
	}
	return LanguageEnglish
}

// ParseLanguage validates an explicit language choice. An empty value is
// accepted and means "detect".
func ParseLanguage(lang string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "":
		return "", true
	case LanguageEnglish, "english":
		return LanguageEnglish, true
	case LanguageNepali, "nepali", "np":
		return LanguageNepali, true
	}
	return "", false
}
