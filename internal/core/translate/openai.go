package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
)

// BackendOpenAI is the name reported by the LLM backend.
const BackendOpenAI = "openai"

const (
	detectPrompt = "Identify the language of the user's text. Answer with the two-letter ISO 639-1 code only, " +
		"or \"und\" if the language cannot be determined."
	translatePromptFmt = "Translate the user's text to %s. Return only the translated text, without quotes or commentary."

	openaiDetectMaxTokens    = 8
	openaiTranslateMaxTokens = 512
)

var translationPrefixes = []string{"translation:", "translated text:", "english:"}

// OpenAIConfig configures the chat-completion backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type openaiService struct {
	client *openai.Client
	model  string
	logger *zerolog.Logger
}

// NewOpenAI returns a backend that asks a chat model to detect and translate.
func NewOpenAI(cfg OpenAIConfig, logger *zerolog.Logger) Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &openaiService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

func (s *openaiService) Name() string {
	return BackendOpenAI
}

func (s *openaiService) Detect(ctx context.Context, text string) (string, error) {
	answer, err := s.complete(ctx, detectPrompt, text, openaiDetectMaxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %w", coreerrors.ErrDetectionFailed, err)
	}

	tag := NormalizeTag(strings.Trim(answer, " \t\n.\"'`"))
	s.logger.Debug().Str("answer", answer).Str("language", tag).Msg("openai language detection")

	return tag, nil
}

func (s *openaiService) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	answer, err := s.complete(ctx, fmt.Sprintf(translatePromptFmt, target), text, openaiTranslateMaxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %w", coreerrors.ErrTranslationFailed, err)
	}

	return cleanTranslation(answer), nil
}

func (s *openaiService) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", coreerrors.ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", coreerrors.ErrEmptyResponse
	}

	return content, nil
}

// cleanTranslation strips the labels and quotes chat models like to add.
func cleanTranslation(s string) string {
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	for _, prefix := range translationPrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}
