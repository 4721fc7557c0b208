package domain

import "strings"

// DefaultLanguageCode es el idioma usado cuando el request no trae uno.
const DefaultLanguageCode = "en"

const fallbackLanguageName = "English"

var languageNames = map[string]string{
	"en": "English",
	"tr": "Turkish",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"hi": "Hindi",
	"zh": "Chinese",
	"it": "Italian",
}

// LanguageName traduce un codigo de idioma al nombre que se le pasa al LLM.
// Codigos desconocidos caen en English.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return fallbackLanguageName
}
