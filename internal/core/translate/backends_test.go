package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

func newOpenAITestServer(t *testing.T, answer func(req openai.ChatCompletionRequest) string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer(req)},
			}},
		}

		w.Header().Set(headerContentType, contentTypeJSON)
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAI_DetectAndTranslate(t *testing.T) {
	srv := newOpenAITestServer(t, func(req openai.ChatCompletionRequest) string {
		if req.Messages[0].Content == detectPrompt {
			return "AR."
		}

		return "Translation: \"Haftar forces entered Sirte\""
	})
	defer srv.Close()

	logger := zerolog.Nop()
	svc := NewOpenAI(OpenAIConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/v1"}, &logger)
	ctx := context.Background()

	lang, err := svc.Detect(ctx, "قوات حفتر دخلت سرت")
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)

	out, err := svc.Translate(ctx, "قوات حفتر دخلت سرت", "en")
	require.NoError(t, err)
	assert.Equal(t, "Haftar forces entered Sirte", out)
}

func TestOpenAI_EmptyAnswer(t *testing.T) {
	srv := newOpenAITestServer(t, func(openai.ChatCompletionRequest) string { return "  " })
	defer srv.Close()

	logger := zerolog.Nop()
	svc := NewOpenAI(OpenAIConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/v1"}, &logger)

	_, err := svc.Translate(context.Background(), "مرحبا", "en")
	assert.ErrorIs(t, err, coreerrors.ErrTranslationFailed)
	assert.ErrorIs(t, err, coreerrors.ErrEmptyResponse)
}

func TestLibreTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)

		switch r.URL.Path {
		case libreDetectPath:
			var req libreDetectRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "secret", req.APIKey)

			_, _ = w.Write([]byte(`[{"language":"en","confidence":20},{"language":"ar","confidence":91}]`))
		case libreTranslatePath:
			var req libreTranslateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "en", req.Target)
			assert.Equal(t, libreSourceAuto, req.Source)

			_, _ = w.Write([]byte(`{"translatedText":"Hello world"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"unknown endpoint"}`))
		}
	}))
	defer srv.Close()

	logger := zerolog.Nop()
	svc := NewLibreTranslate(LibreTranslateConfig{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second}, &logger)
	ctx := context.Background()

	lang, err := svc.Detect(ctx, "مرحبا بالعالم")
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)

	out, err := svc.Translate(ctx, "مرحبا بالعالم", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
}

func TestLibreTranslate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid request: missing q parameter"}`))
	}))
	defer srv.Close()

	logger := zerolog.Nop()
	svc := NewLibreTranslate(LibreTranslateConfig{BaseURL: srv.URL, Timeout: time.Second}, &logger)

	_, err := svc.Translate(context.Background(), "x", "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerrors.ErrTranslationFailed)
	assert.ErrorIs(t, err, coreerrors.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "missing q parameter")
}

func TestLibreTranslate_NoDetections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	logger := zerolog.Nop()
	svc := NewLibreTranslate(LibreTranslateConfig{BaseURL: srv.URL, Timeout: time.Second}, &logger)

	lang, err := svc.Detect(context.Background(), "?")
	require.NoError(t, err)
	assert.Equal(t, Undetermined, lang)
}
