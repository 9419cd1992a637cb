package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

// BackendLibreTranslate is the name reported by the LibreTranslate backend.
const BackendLibreTranslate = "libretranslate"

const (
	libreDetectPath    = "/detect"
	libreTranslatePath = "/translate"
	libreSourceAuto    = "auto"
	libreFormatText    = "text"
	libreMaxErrorBody  = 512

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// LibreTranslateConfig configures the LibreTranslate backend.
type LibreTranslateConfig struct {
	BaseURL  string
	APIKey   string
	RetryMax int
	Timeout  time.Duration
}

type libreService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zerolog.Logger
}

type libreDetectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type libreDetection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type libreErrorResponse struct {
	Error string `json:"error"`
}

// NewLibreTranslate returns a backend for a LibreTranslate server.
// Transient failures (connection errors, 429 and 5xx) are retried with backoff.
func NewLibreTranslate(cfg LibreTranslateConfig, logger *zerolog.Logger) Service {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = leveledLogger{logger: logger}

	return &libreService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: client.StandardClient(),
		logger:     logger,
	}
}

func (s *libreService) Name() string {
	return BackendLibreTranslate
}

func (s *libreService) Detect(ctx context.Context, text string) (string, error) {
	var detections []libreDetection

	err := s.post(ctx, libreDetectPath, libreDetectRequest{Q: text, APIKey: s.apiKey}, &detections)
	if err != nil {
		return "", fmt.Errorf("%w: %w", coreerrors.ErrDetectionFailed, err)
	}

	if len(detections) == 0 {
		return Undetermined, nil
	}

	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}

	return NormalizeTag(best.Language), nil
}

func (s *libreService) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	req := libreTranslateRequest{
		Q:      text,
		Source: libreSourceAuto,
		Target: target,
		Format: libreFormatText,
		APIKey: s.apiKey,
	}

	var resp libreTranslateResponse
	if err := s.post(ctx, libreTranslatePath, req, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", coreerrors.ErrTranslationFailed, err)
	}

	if resp.TranslatedText == "" {
		return "", fmt.Errorf("%w: %w", coreerrors.ErrTranslationFailed, coreerrors.ErrEmptyResponse)
	}

	return resp.TranslatedText, nil
}

func (s *libreService) post(ctx context.Context, path string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("libretranslate request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr libreErrorResponse
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%w %d: %s", coreerrors.ErrUnexpectedStatus, resp.StatusCode, apiErr.Error)
		}

		if len(data) > libreMaxErrorBody {
			data = data[:libreMaxErrorBody]
		}

		return fmt.Errorf("%w %d: %s", coreerrors.ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger *zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
