// Package translate is the language detection and translation collaborator
// used by the classification pipeline.
//
// Backends:
//   - openai: chat-completion model detects the language and translates
//   - libretranslate: self-hosted LibreTranslate HTTP API
//   - mock: passthrough, for local runs and tests
//
// Any backend can be paired with the local ScriptDetector and wrapped with
// Guarded for rate limiting, timeouts and a circuit breaker.
package translate

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Undetermined is the tag reported when no language could be identified.
const Undetermined = "und"

// Detector identifies the language of a text.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator renders a text in the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Service is a backend that both detects and translates.
type Service interface {
	Detector
	Translator
	Name() string
}

// NormalizeTag reduces a language tag to its base ISO 639 code
// ("ar-EG" -> "ar", "EN" -> "en"). Unparseable input yields Undetermined.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Undetermined
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return Undetermined
	}

	base, _ := parsed.Base()

	return base.String()
}

type composite struct {
	Service
	detector Detector
}

// WithDetector keeps svc for translation but answers Detect with detector.
func WithDetector(svc Service, detector Detector) Service {
	return &composite{Service: svc, detector: detector}
}

func (c *composite) Detect(ctx context.Context, text string) (string, error) {
	return c.detector.Detect(ctx, text)
}
