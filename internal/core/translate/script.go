package translate

import (
	"context"
	"strings"
	"unicode"
)

const (
	langEnglish = "en"
	langArabic  = "ar"

	arabicThreshold = 0.3 // If >30% Arabic letters, consider Arabic
	latinThreshold  = 0.5 // If >50% Latin letters, consider Latin-based language

	// Latin text is English unless other-language function words outnumber
	// English ones and make up at least this share of the words.
	foreignMarkerRatio = 0.08
)

var englishMarkers = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "is": {}, "for": {}, "on": {}, "with": {},
	"as": {}, "by": {}, "from": {}, "at": {}, "that": {}, "this": {}, "be": {}, "are": {}, "was": {},
	"were": {}, "has": {}, "have": {}, "will": {}, "its": {}, "it": {}, "not": {}, "we": {}, "they": {},
}

// Function words of other Latin-script languages (German, French, Spanish, Italian).
var foreignMarkers = map[string]struct{}{
	"der": {}, "die": {}, "das": {}, "und": {}, "ist": {}, "nicht": {}, "mit": {}, "aus": {}, "bei": {},
	"uns": {}, "ein": {}, "eine": {}, "auf": {}, "le": {}, "la": {}, "les": {}, "et": {}, "est": {},
	"une": {}, "des": {}, "du": {}, "pour": {}, "dans": {}, "el": {}, "los": {}, "las": {}, "y": {},
	"que": {}, "por": {}, "para": {}, "con": {}, "del": {}, "il": {}, "di": {}, "che": {}, "per": {},
}

// ScriptDetector classifies text by Unicode script without calling a remote service.
// It only distinguishes English and Arabic; everything else is Undetermined.
type ScriptDetector struct{}

// NewScriptDetector returns a local detector.
func NewScriptDetector() *ScriptDetector {
	return &ScriptDetector{}
}

// Detect implements Detector.
func (ScriptDetector) Detect(_ context.Context, text string) (string, error) {
	return DetectScript(text), nil
}

// DetectScript returns "en", "ar" or Undetermined for text.
func DetectScript(text string) string {
	latin, arabic, total := countScriptLetters(text)
	if total == 0 {
		return Undetermined
	}

	if float64(arabic)/float64(total) >= arabicThreshold {
		return langArabic
	}

	if float64(latin)/float64(total) >= latinThreshold && isLikelyEnglish(text) {
		return langEnglish
	}

	return Undetermined
}

func countScriptLetters(text string) (latin, arabic, total int) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}

		total++

		switch {
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	return
}

// isLikelyEnglish rejects Latin text only on positive evidence of another
// language; tweets and headlines often carry no English function words at all.
func isLikelyEnglish(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	if len(words) == 0 {
		return false
	}

	english, foreign := 0, 0

	for _, w := range words {
		if _, ok := englishMarkers[w]; ok {
			english++
		}

		if _, ok := foreignMarkers[w]; ok {
			foreign++
		}
	}

	if foreign <= english {
		return true
	}

	return float64(foreign)/float64(len(words)) < foreignMarkerRatio
}
