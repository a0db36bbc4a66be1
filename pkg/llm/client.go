// Package llm provides OpenAI-compatible model client functionality.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/retry"
)

// Generation parameters shared by every completion request. Low temperature
// keeps SQL output deterministic across repeated invocations.
const (
	DefaultTemperature = 0.1
	DefaultTopP        = 0.9
)

// Client provides access to OpenAI-compatible model endpoints.
type Client struct {
	client   *openai.Client
	endpoint string
	model    string
	retryCfg *retry.Config
	logger   *zap.Logger
}

// Config holds configuration for creating a model client.
type Config struct {
	Endpoint string // Base URL, e.g., "https://api.openai.com/v1"
	Model    string // Model name, e.g., "qwen-plus"
	APIKey   string // Optional for local endpoints
}

// NewClient creates a new OpenAI-compatible model client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		retryCfg: retry.DefaultConfig(),
		logger:   logger.Named("llm"),
	}, nil
}

// Complete sends a chat completion request and returns the response with
// usage stats. Transient failures are retried with backoff inside the client;
// callers above this layer never retry.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	c.logger.Debug("model request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(userPrompt)))

	start := time.Now()

	resp, err := retry.DoWithResult(ctx, c.retryCfg, func() (openai.ChatCompletionResponse, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: DefaultTemperature,
			TopP:        DefaultTopP,
		})
		if err != nil {
			return openai.ChatCompletionResponse{}, c.parseError(err)
		}
		return resp, nil
	})
	if err != nil {
		c.logger.Error("model request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, NewError(KindMalformedResponse, "no choices in response", false, nil)
	}

	elapsed := time.Since(start)
	c.logger.Info("model request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", elapsed))

	return &CompletionResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.model
}

// GetEndpoint returns the configured endpoint.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}

// parseError categorizes OpenAI API errors using the structured Error type.
func (c *Client) parseError(err error) error {
	llmErr := ClassifyError(err)
	llmErr.Model = c.model
	llmErr.Endpoint = c.endpoint
	return llmErr
}
