package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibecoding/vibe-backend/internal/config"
	"github.com/vibecoding/vibe-backend/internal/entity"
	pkgRetry "github.com/vibecoding/vibe-backend/internal/pkg/retry"
	"go.uber.org/zap/zaptest"
)

const testToken = "sk-or-v1-0123456789abcdef"

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout: 2 * time.Second,
			Token:          testToken,
			Url:            url,
		},
		CompletionsEndpoint: "/chat/completions",
		Model:               "test-model",
		Referer:             "http://localhost:5173",
		Title:               "Vibe Coder",
		Retry: pkgRetry.RetryConfig{
			Attempts: 2,
			Delay:    time.Millisecond,
			MaxDelay: 5 * time.Millisecond,
		},
	}
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entity.ChatCompletionResponse{
		Choices: []entity.ChatChoice{{Message: entity.ChatMessage{Role: "assistant", Content: content}}},
	})
}

// dropConnection hijacks the connection and closes it without a response,
// which the client sees as a transport error.
func dropConnection(t *testing.T, w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	require.True(t, ok)
	conn, _, err := hj.Hijack()
	require.NoError(t, err)
	conn.Close()
}

// truncateBody hijacks the connection, writes a 200 whose body is shorter
// than its Content-Length, then closes it.
func truncateBody(t *testing.T, w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	require.True(t, ok)
	conn, _, err := hj.Hijack()
	require.NoError(t, err)
	conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 100\r\n\r\n{\"choices\":"))
	conn.Close()
}

func TestGenerateSendsChatRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:5173", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Vibe Coder", r.Header.Get("X-Title"))

		var req entity.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, []entity.ChatMessage{
			{Role: entity.RoleSystem, Content: "be brief"},
			{Role: entity.RoleUser, Content: "hello"},
		}, req.Messages)

		writeCompletion(w, "hi there")
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	out, err := c.Generate(context.Background(), "test-model", "hello", "be brief")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestGenerateDefaultsSystemPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req entity.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, entity.DefaultSystemPrompt, req.Messages[0].Content)
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")
	require.NoError(t, err)
}

func TestGenerateRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			dropConnection(t, w)
			return
		}
		writeCompletion(w, "second attempt")
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	out, err := c.Generate(context.Background(), "test-model", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "second attempt", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateRetriesBodyReadFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			truncateBody(t, w)
			return
		}
		writeCompletion(w, "second attempt")
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	out, err := c.Generate(context.Background(), "test-model", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "second attempt", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateRetriesAttemptTimeout(t *testing.T) {
	tests := []struct {
		name        string
		sendHeaders bool
	}{
		{name: "before headers"},
		{name: "while streaming body", sendHeaders: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					if tt.sendHeaders {
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(http.StatusOK)
						w.(http.Flusher).Flush()
					}
					select {
					case <-r.Context().Done():
					case <-time.After(time.Second):
					}
					return
				}
				writeCompletion(w, "second attempt")
			}))
			defer srv.Close()

			cfg := testConfig(srv.URL)
			cfg.RequestTimeout = 100 * time.Millisecond

			c := NewConnector(cfg, zaptest.NewLogger(t))
			out, err := c.Generate(context.Background(), "test-model", "hello", "")
			require.NoError(t, err)
			assert.Equal(t, "second attempt", out)
			assert.Equal(t, int32(2), calls.Load())
		})
	}
}

func TestGenerateFailsAfterTwoTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		dropConnection(t, w)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")

	var netErr *entity.NetworkError
	require.True(t, errors.As(err, &netErr), "expected NetworkError, got %v", err)
	assert.Equal(t, uint(2), netErr.Attempts)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateStatusErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")

	var upErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &upErr), "expected UpstreamStatusError, got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
	assert.Equal(t, "rate limited", upErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateStatusErrorFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")

	var upErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadGateway, upErr.Status)
	assert.Equal(t, "upstream exploded", upErr.Message)
}

func TestGenerateMalformedResponseIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": "nope"`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")

	var upErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
}

func TestGenerateEmptyChoicesIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	_, err := c.Generate(context.Background(), "test-model", "hello", "")

	var upErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.Contains(t, upErr.Message, "no choices")
}

func TestUpstreamMessage(t *testing.T) {
	assert.Equal(t, "quota", upstreamMessage([]byte(`{"error":{"message":"quota"}}`)))
	assert.Equal(t, `{"error":{}}`, upstreamMessage([]byte(`{"error":{}}`)))
	assert.Equal(t, "plain text", upstreamMessage([]byte("plain text")))
}

func TestMockConnectorRoutesBySystemPrompt(t *testing.T) {
	m := NewMockConnector(zaptest.NewLogger(t))
	ctx := context.Background()

	plan, err := m.Generate(ctx, "m", "brief", "You are an expert UX architect and website planner.")
	require.NoError(t, err)
	assert.Equal(t, mockPlan, plan)

	copyText, err := m.Generate(ctx, "m", "brief", "You are an expert copywriter and marketing specialist.")
	require.NoError(t, err)
	assert.Equal(t, mockCopy, copyText)

	code, err := m.Generate(ctx, "m", "brief", "")
	require.NoError(t, err)
	assert.Equal(t, mockCode, code)
}
