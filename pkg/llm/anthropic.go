package llm

import (
	"context"
	"fmt"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/retry"
)

const anthropicMaxTokens = 4096

// AnthropicClient provides access to Anthropic model endpoints through the
// same Invoker surface as the OpenAI-compatible Client.
type AnthropicClient struct {
	client   *anthropic.Client
	endpoint string
	model    string
	retryCfg *retry.Config
	logger   *zap.Logger
}

// NewAnthropicClient creates a client for Anthropic endpoints.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicClient{
		client:   anthropic.NewClient(cfg.APIKey, opts...),
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		retryCfg: retry.DefaultConfig(),
		logger:   logger.Named("llm"),
	}, nil
}

// Complete sends a messages request and returns the response with usage stats.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
	c.logger.Debug("model request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(userPrompt)))

	start := time.Now()

	resp, err := retry.DoWithResult(ctx, c.retryCfg, func() (anthropic.MessagesResponse, error) {
		resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
			Model:     anthropic.Model(c.model),
			System:    systemPrompt,
			MaxTokens: anthropicMaxTokens,
			Messages: []anthropic.Message{
				anthropic.NewUserTextMessage(userPrompt),
			},
			Temperature: float32Ptr(DefaultTemperature),
			TopP:        float32Ptr(DefaultTopP),
		})
		if err != nil {
			return anthropic.MessagesResponse{}, c.parseError(err)
		}
		return resp, nil
	})
	if err != nil {
		c.logger.Error("model request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	content := resp.GetFirstContentText()
	if content == "" {
		return nil, NewError(KindMalformedResponse, "no text content in response", false, nil)
	}

	c.logger.Info("model request completed",
		zap.Int("prompt_tokens", resp.Usage.InputTokens),
		zap.Int("completion_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Content:          content,
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
		TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

// GetEndpoint returns the configured endpoint.
func (c *AnthropicClient) GetEndpoint() string {
	return c.endpoint
}

func (c *AnthropicClient) parseError(err error) error {
	llmErr := ClassifyError(err)
	llmErr.Model = c.model
	llmErr.Endpoint = c.endpoint
	return llmErr
}

func float32Ptr(v float32) *float32 {
	return &v
}
