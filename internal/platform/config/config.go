package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Translator backends.
const (
	BackendOpenAI         = "openai"
	BackendLibreTranslate = "libretranslate"
	BackendMock           = "mock"
)

// Language detectors.
const (
	DetectorRemote = "remote"
	DetectorScript = "script"
)

var (
	errUnknownBackend  = errors.New("unknown translator backend")
	errUnknownDetector = errors.New("unknown language detector")
	errMissingSetting  = errors.New("missing required setting")
	errInvalidSetting  = errors.New("invalid setting")
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`
	Debug  bool   `env:"DEBUG" envDefault:"true"`

	HTTPHost string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"5050"`

	// Model artifacts and output log
	RelevanceClassifierPath string `env:"RELEVANCE_CLASSIFIER_PATH" envDefault:"./classifiers/relevance_classifier.json"`
	CountVectorizerPath     string `env:"COUNT_VECTORIZER_PATH" envDefault:"./classifiers/count_vectorizer.json"`
	OutputLogPath           string `env:"OUTPUT_LOG_PATH" envDefault:"./outputs/classifiedTweets.csv"`
	StopwordsExtraPath      string `env:"STOPWORDS_EXTRA_PATH"`

	// Translation / detection collaborator
	TranslatorBackend string `env:"TRANSLATOR_BACKEND" envDefault:"openai"`
	LanguageDetector  string `env:"LANGUAGE_DETECTOR" envDefault:"remote"`

	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMBaseURL string `env:"LLM_BASE_URL"`

	LibreTranslateURL    string `env:"LIBRETRANSLATE_URL" envDefault:"http://localhost:5000"`
	LibreTranslateAPIKey string `env:"LIBRETRANSLATE_API_KEY"`

	TranslationTimeout          time.Duration `env:"TRANSLATION_TIMEOUT" envDefault:"30s"`
	TranslationRPS              float64       `env:"TRANSLATION_RPS" envDefault:"5"`
	TranslationRetryMax         int           `env:"TRANSLATION_RETRY_MAX" envDefault:"2"`
	TranslationCircuitThreshold uint32        `env:"TRANSLATION_CIRCUIT_THRESHOLD" envDefault:"5"`
	TranslationCircuitTimeout   time.Duration `env:"TRANSLATION_CIRCUIT_TIMEOUT" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.TranslatorBackend = strings.ToLower(strings.TrimSpace(cfg.TranslatorBackend))
	cfg.LanguageDetector = strings.ToLower(strings.TrimSpace(cfg.LanguageDetector))
	cfg.LibreTranslateURL = strings.TrimRight(strings.TrimSpace(cfg.LibreTranslateURL), "/")
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	switch c.TranslatorBackend {
	case BackendOpenAI:
		if c.LLMAPIKey == "" {
			return fmt.Errorf("%w: LLM_API_KEY for %s backend", errMissingSetting, BackendOpenAI)
		}
	case BackendLibreTranslate:
		if c.LibreTranslateURL == "" {
			return fmt.Errorf("%w: LIBRETRANSLATE_URL for %s backend", errMissingSetting, BackendLibreTranslate)
		}
	case BackendMock:
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, c.TranslatorBackend)
	}

	switch c.LanguageDetector {
	case DetectorRemote, DetectorScript:
	default:
		return fmt.Errorf("%w: %q", errUnknownDetector, c.LanguageDetector)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: HTTP_PORT=%d", errInvalidSetting, c.HTTPPort)
	}

	if c.TranslationRPS < 0 {
		return fmt.Errorf("%w: TRANSLATION_RPS must not be negative", errInvalidSetting)
	}

	return nil
}

// Addr returns the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
