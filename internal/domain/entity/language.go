package entity

import "strings"

// Language is the reply language a user asked for
type Language string

const (
	LanguageHindi   Language = "hindi"
	LanguageEnglish Language = "en"
	LanguageAuto    Language = "auto"
)

// ParseLanguage normalizes a lang field. Anything unrecognized, including
// the empty string, is auto.
func ParseLanguage(raw string) Language {
	switch l := Language(strings.ToLower(strings.TrimSpace(raw))); l {
	case LanguageHindi, LanguageEnglish:
		return l
	default:
		return LanguageAuto
	}
}

// Directive returns the language instruction placed in the prompt
func (l Language) Directive() string {
	switch l {
	case LanguageHindi:
		return "Respond ONLY in Hindi (Devanagari script). Do not write sentences in English."
	case LanguageEnglish:
		return "Respond ONLY in English. Do not mix Hindi words except for proper names."
	default:
		return "You may respond in Hindi or English depending on what is most comfortable for the user (Hinglish allowed)."
	}
}
