package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Client is the chat-completion collaborator shared by the summarization
// pipeline and the story cleaner. Responses are plain text; callers are
// responsible for defensive JSON extraction.
type Client interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// EinoClient drives an OpenAI-compatible chat model through eino, with a
// shared rate limiter and bounded retry on 429 responses.
type EinoClient struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
}

// Config mirrors the llm section of the service configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	QPS     int
	RPM     int
}

func NewEinoClient(ctx context.Context, cfg Config) (*EinoClient, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	rpm := cfg.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	return &EinoClient{chatModel: chatModel, limiter: limiter}, nil
}

var _ Client = (*EinoClient)(nil)

const (
	maxRetries = 3
	baseDelay  = 2 * time.Second
)

// Complete issues one chat completion. 429s are retried with exponential
// backoff; every other failure is returned to the caller as-is.
func (c *EinoClient) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	opts := []model.Option{model.WithTemperature(temperature)}
	if maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(maxTokens))
	}

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("limiter wait: %w", err)
		}

		resp, err := c.chatModel.Generate(ctx, messages, opts...)
		if err != nil {
			if isRateLimited(err) && i < maxRetries {
				lastErr = err
				delay := baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("model rate limited, retrying in %v (%d/%d)", delay, i+1, maxRetries)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return "", err
		}
		return resp.Content, nil
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
