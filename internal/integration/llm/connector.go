package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vibecoding/vibe-backend/internal/config"
	"github.com/vibecoding/vibe-backend/internal/entity"
	"github.com/vibecoding/vibe-backend/internal/integration/common"
	pkghttp "github.com/vibecoding/vibe-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector calls an OpenAI-compatible chat completions endpoint.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithMaxIdleConnsPerHost(16),
			pkghttp.WithStaticHeaders(map[string]string{
				"HTTP-Referer": cfg.Referer,
				"X-Title":      cfg.Title,
			}),
		),
		config: cfg,
		logger: logger,
	}
}

// Generate sends one system+user exchange and returns the first choice's content.
//
// Transport failures are retried up to the configured number of attempts.
// A non-2xx response fails immediately with *entity.UpstreamStatusError; exhausted
// retries fail with *entity.NetworkError.
func (c *Connector) Generate(ctx context.Context, model, prompt, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = entity.DefaultSystemPrompt
	}

	req := &entity.ChatCompletionRequest{
		Model: model,
		Messages: []entity.ChatMessage{
			{Role: entity.RoleSystem, Content: systemPrompt},
			{Role: entity.RoleUser, Content: prompt},
		},
	}

	ctxzap.Debug(ctx, "calling LLM service", zap.String("model", model), zap.Int("prompt_length", len(prompt)))

	var attempts uint
	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			var netErr *pkghttp.NetworkError
			return errors.As(err, &netErr) && ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "LLM request attempt failed at transport level",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)

	resp, err := retry.DoWithData(func() (*entity.ChatCompletionResponse, error) {
		attempts++
		var out entity.ChatCompletionResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, opts...)
	if err != nil {
		return "", classifyError(err, attempts)
	}

	if len(resp.Choices) == 0 {
		return "", entity.NewUnexpectedUpstreamError(errors.New("response contains no choices"))
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Debug(ctx, "LLM call completed",
		zap.String("model", model),
		zap.Uint("attempts", attempts),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

func classifyError(err error, attempts uint) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return &entity.UpstreamStatusError{
			Status:  httpErr.StatusCode,
			Message: upstreamMessage(httpErr.Body),
			Err:     err,
		}
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return &entity.NetworkError{Attempts: attempts, Err: netErr.Err}
	}

	return entity.NewUnexpectedUpstreamError(err)
}

// upstreamMessage returns error.message from a JSON error envelope, or the raw
// body when the envelope is absent or empty.
func upstreamMessage(body []byte) string {
	var envelope entity.UpstreamErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}
