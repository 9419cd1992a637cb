// Package app wires configuration, model artifacts, the translation backend,
// the CSV log and the HTTP server into a running service.
//
// Everything loaded here is built once at startup and shared read-only by
// all requests.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-classifier/internal/api"
	"github.com/lueurxax/tweet-classifier/internal/core/classify"
	"github.com/lueurxax/tweet-classifier/internal/core/translate"
	"github.com/lueurxax/tweet-classifier/internal/platform/config"
	"github.com/lueurxax/tweet-classifier/internal/process/pipeline"
	"github.com/lueurxax/tweet-classifier/internal/process/textprep"
	"github.com/lueurxax/tweet-classifier/internal/storage"
)

// App holds the application dependencies.
type App struct {
	cfg      *config.Config
	model    *classify.Model
	language translate.Service
	guard    *translate.Guarded
	log      *storage.CSVLog
	pipeline *pipeline.Pipeline
	logger   *zerolog.Logger
}

// New loads the model artifacts and stopword lists and builds the pipeline.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	model, err := classify.Load(cfg.RelevanceClassifierPath, cfg.CountVectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("loading relevance model: %w", err)
	}

	logger.Info().
		Str("classifier", cfg.RelevanceClassifierPath).
		Str("vectorizer", cfg.CountVectorizerPath).
		Int("features", model.Vectorizer().Dimension()).
		Ints("classes", model.Classes()).
		Msg("relevance model loaded")

	stopwords, err := textprep.LoadStopwords(cfg.StopwordsExtraPath)
	if err != nil {
		return nil, fmt.Errorf("loading stopwords: %w", err)
	}

	language, guard := NewLanguageService(cfg, logger)
	log := storage.NewCSVLog(cfg.OutputLogPath, logger)

	return &App{
		cfg:      cfg,
		model:    model,
		language: language,
		guard:    guard,
		log:      log,
		pipeline: pipeline.New(language, stopwords, model, log, logger),
		logger:   logger,
	}, nil
}

// NewLanguageService builds the configured backend, optionally swaps in the
// local script detector, and guards the result. The guard is returned so its
// circuit state can back the readiness probe.
func NewLanguageService(cfg *config.Config, logger *zerolog.Logger) (translate.Service, *translate.Guarded) {
	var backend translate.Service

	switch cfg.TranslatorBackend {
	case config.BackendOpenAI:
		backend = translate.NewOpenAI(translate.OpenAIConfig{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
		}, logger)
	case config.BackendLibreTranslate:
		backend = translate.NewLibreTranslate(translate.LibreTranslateConfig{
			BaseURL:  cfg.LibreTranslateURL,
			APIKey:   cfg.LibreTranslateAPIKey,
			RetryMax: cfg.TranslationRetryMax,
			Timeout:  cfg.TranslationTimeout,
		}, logger)
	default:
		backend = translate.NewMock()
	}

	guarded := translate.NewGuarded(backend, translate.GuardConfig{
		Timeout:          cfg.TranslationTimeout,
		RPS:              cfg.TranslationRPS,
		FailureThreshold: cfg.TranslationCircuitThreshold,
		OpenTimeout:      cfg.TranslationCircuitTimeout,
	}, logger)

	logger.Info().
		Str("backend", backend.Name()).
		Str("detector", cfg.LanguageDetector).
		Msg("language service configured")

	if cfg.LanguageDetector == config.DetectorScript {
		return translate.WithDetector(guarded, translate.NewScriptDetector()), guarded
	}

	return guarded, guarded
}

// Pipeline exposes the request pipeline.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

// RunServer serves the API until ctx is canceled.
func (a *App) RunServer(ctx context.Context) error {
	router := api.NewRouter(a.pipeline, a.logger, a.guard.Check, a.log.Check)

	return api.NewServer(a.cfg.Addr(), router, a.logger).Start(ctx)
}
