package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-classifier/internal/core/domain"
	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
	"github.com/lueurxax/tweet-classifier/internal/platform/observability"
)

const (
	paramTweet = "tweet"

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json; charset=utf-8"

	msgMissingTweet     = "tweet parameter is required"
	msgInternalError    = "internal server error"
	msgUndetectedTweet  = "unable to detect language of tweet"
	msgMalformedRequest = "malformed request"
)

// Classifier runs one post through the pipeline.
type Classifier interface {
	Process(ctx context.Context, raw string) (domain.ClassificationResult, error)
}

type tweetRequest struct {
	Tweet string `validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves /api.
type Handler struct {
	classifier Classifier
	validate   *validator.Validate
	logger     *zerolog.Logger
}

func NewHandler(classifier Classifier, logger *zerolog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ServeHTTP reads the tweet from the query string or, for POST, the form body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.classifier.Process(r.Context(), req.Tweet)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) parseRequest(r *http.Request) (tweetRequest, error) {
	if err := r.ParseForm(); err != nil {
		return tweetRequest{}, fmt.Errorf("%w: %s", coreerrors.ErrInvalidInput, msgMalformedRequest)
	}

	req := tweetRequest{Tweet: r.Form.Get(paramTweet)}
	if err := h.validate.Struct(req); err != nil {
		return tweetRequest{}, fmt.Errorf("%w: %s", coreerrors.ErrInvalidInput, msgMissingTweet)
	}

	return req, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrInvalidInput):
		countRejected()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	case errors.Is(err, coreerrors.ErrLanguageUndetected):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msgUndetectedTweet})
		return
	}

	h.logger.Error().
		Err(err).
		Str("request_id", RequestIDFromContext(r.Context())).
		Msg("classification failed")

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternalError})
}

func countRejected() {
	observability.RequestsTotal.WithLabelValues("", observability.StatusBadRequest).Inc()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
