package content

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// LanguageUnknown is reported for texts too short or too ambiguous to detect
const LanguageUnknown = "unknown"

// minLanguageLetters is the minimal number of letters needed for detection
const minLanguageLetters = 20

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns ISO 639-1 code of the text language, or LanguageUnknown.
// Only languages of the covered football markets are considered.
func DetectLanguage(text string) string {
	sample := strings.TrimSpace(text)
	letters := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < minLanguageLetters {
		return LanguageUnknown
	}

	lang, ok := getDetector().DetectLanguageOf(sample)
	if !ok {
		return LanguageUnknown
	}
	code := strings.ToLower(lang.IsoCode639_1().String())
	if len(code) != 2 {
		return LanguageUnknown
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Spanish, lingua.French, lingua.German, lingua.Italian,
				lingua.Portuguese, lingua.Dutch).
			Build()
	})
	return detector
}
