package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Building a detector loads language models, so it is done once and only
// for the languages journal expects to see.
var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

var DetectableLanguages = []lingua.Language{
	lingua.English,
	lingua.Russian,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Chinese,
	lingua.Japanese,
}

// DetectLanguage returns the lowercase ISO 639-1 code of text, or an empty string.
func DetectLanguage(text string) string {
	if len(strings.TrimSpace(text)) == 0 {
		return ""
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(DetectableLanguages...).
			Build()
	})

	if language, ok := detector.DetectLanguageOf(text); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
