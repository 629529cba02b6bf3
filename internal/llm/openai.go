package llm

import (
	"context"
	"errors"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/provos/terraform-secure/internal/config"
	"github.com/provos/terraform-secure/internal/logger"
	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
// Pointing BaseURL at a local Ollama server covers the offline case; Ollama
// ignores the bearer token, so a placeholder key is used when the
// environment variable is unset.
type OpenAIClient struct {
	api        *openai.Client
	provider   string
	model      string
	timeout    time.Duration
	maxRetries int
	log        *logger.Logger
}

// NewOpenAIClient builds a client from the LLM settings.
func NewOpenAIClient(settings config.LLMSettings, log *logger.Logger) *OpenAIClient {
	apiKey := ""
	if settings.APIKeyEnv != "" {
		apiKey = os.Getenv(settings.APIKeyEnv)
	}
	if apiKey == "" {
		apiKey = "unused"
	}

	cfg := openai.DefaultConfig(apiKey)
	if settings.BaseURL != "" {
		cfg.BaseURL = settings.BaseURL
	}

	timeout := time.Duration(settings.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &OpenAIClient{
		api:        openai.NewClientWithConfig(cfg),
		provider:   settings.Provider,
		model:      settings.Model,
		timeout:    timeout,
		maxRetries: settings.MaxRetries,
		log:        log,
	}
}

// Generate runs one chat completion constrained to the request schema,
// retrying transient failures with a linear backoff.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if len(req.Schema) > 0 {
		completion.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.WithFields(map[string]any{"attempt": attempt}).Warn("retrying LLM request")
			select {
			case <-ctx.Done():
				return nil, secerrors.NewAnalysisError(c.provider, ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, completion)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = errors.New("response contained no choices")
			continue
		}
		return []byte(resp.Choices[0].Message.Content), nil
	}

	return nil, secerrors.NewAnalysisError(c.provider, lastErr)
}
