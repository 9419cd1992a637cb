// Package pipeline runs a single post through the classification steps:
// sanitize, detect language, translate Arabic to English, strip stopwords,
// classify relevance, then append the result to the log.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-classifier/internal/core/domain"
	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
	"github.com/lueurxax/tweet-classifier/internal/platform/observability"
	"github.com/lueurxax/tweet-classifier/internal/process/textprep"
)

const targetLanguage = domain.LanguageEnglish

// LanguageService detects the language of a post and translates it.
type LanguageService interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, target string) (string, error)
}

// RelevanceModel maps English text to a relevance label.
type RelevanceModel interface {
	Classify(text string) (int, error)
}

// ResultLog persists one result per processed post.
type ResultLog interface {
	Append(ctx context.Context, r domain.ClassificationResult) error
}

type Pipeline struct {
	language  LanguageService
	stopwords *textprep.Stopwords
	model     RelevanceModel
	log       ResultLog
	logger    *zerolog.Logger
}

func New(language LanguageService, stopwords *textprep.Stopwords, model RelevanceModel, log ResultLog, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		language:  language,
		stopwords: stopwords,
		model:     model,
		log:       log,
		logger:    logger,
	}
}

// Process classifies raw and appends the result to the log. Posts that are
// neither English nor Arabic end with ErrLanguageUndetected and are not logged.
func (p *Pipeline) Process(ctx context.Context, raw string) (domain.ClassificationResult, error) {
	var result domain.ClassificationResult

	start := time.Now()
	sanitized := textprep.Sanitize(raw)
	observeStage(observability.StageSanitize, start)

	lang, err := p.detect(ctx, sanitized)
	if err != nil {
		countRequest("", observability.StatusError)
		return result, err
	}

	var classified string

	switch lang {
	case domain.LanguageEnglish:
		classified = sanitized
	case domain.LanguageArabic:
		result.OriginalTweet = domain.StringPtr(sanitized)

		classified, err = p.translate(ctx, sanitized)
		if err != nil {
			countRequest(lang, observability.StatusError)
			return domain.ClassificationResult{}, err
		}
	default:
		p.logger.Error().Str("language", lang).Msg("Unable to detect language of tweet")
		countRequest(lang, observability.StatusUndetected)

		return result, coreerrors.ErrLanguageUndetected
	}

	result.Language = domain.StringPtr(lang)

	start = time.Now()
	classified = p.stopwords.Remove(classified)
	observeStage(observability.StageStopwords, start)

	result.ClassifiedTweet = domain.StringPtr(classified)

	start = time.Now()
	relevance, err := p.model.Classify(classified)
	observeStage(observability.StageClassify, start)

	if err != nil {
		countRequest(lang, observability.StatusError)
		return domain.ClassificationResult{}, fmt.Errorf("classify relevance: %w", err)
	}

	result.Relevance = relevance
	result.Candidate = domain.CandidateUnclassified
	result.Sentiment = domain.SentimentUnclassified

	p.logger.Debug().
		Str("original", domain.Deref(result.OriginalTweet)).
		Str("classified", classified).
		Str("language", lang).
		Int("relevance", relevance).
		Msg("Classified tweet")

	start = time.Now()
	err = p.log.Append(ctx, result)
	observeStage(observability.StagePersist, start)

	if err != nil {
		countRequest(lang, observability.StatusError)
		return domain.ClassificationResult{}, fmt.Errorf("append result: %w", err)
	}

	countRequest(lang, observability.StatusOK)
	observability.RelevanceLabels.WithLabelValues(strconv.Itoa(relevance)).Inc()

	return result, nil
}

func (p *Pipeline) detect(ctx context.Context, text string) (string, error) {
	start := time.Now()
	defer observeStage(observability.StageDetect, start)

	lang, err := p.language.Detect(ctx, text)
	if err != nil {
		return "", fmt.Errorf("detect language: %w", err)
	}

	return lang, nil
}

func (p *Pipeline) translate(ctx context.Context, text string) (string, error) {
	start := time.Now()
	defer observeStage(observability.StageTranslate, start)

	out, err := p.language.Translate(ctx, text, targetLanguage)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", targetLanguage, err)
	}

	return out, nil
}

func observeStage(stage string, start time.Time) {
	observability.StageDurationSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func countRequest(lang, status string) {
	observability.RequestsTotal.WithLabelValues(lang, status).Inc()
}
