package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type echoBody struct {
	Value string `json:"value"`
}

func TestDoRequestSendsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Vibe Coder", r.Header.Get("X-Title"))
		assert.Empty(t, r.Header.Get("HTTP-Referer"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value":"pong"}`))
	}))
	defer srv.Close()

	c := NewConnector(
		&ConnectorConfig{BaseURL: srv.URL, Logger: zaptest.NewLogger(t)},
		WithRequestLogging(),
		WithAuthToken("sk-test-token"),
		WithStaticHeaders(map[string]string{"X-Title": "Vibe Coder", "HTTP-Referer": ""}),
	)

	var out echoBody
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", echoBody{Value: "ping"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.Value)
}

func TestDoRequestReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`slow down`))
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zaptest.NewLogger(t)})

	err := c.DoRequest(context.Background(), http.MethodPost, "", nil, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, "slow down", string(httpErr.Body))
}

func TestDoRequestReturnsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: url, Logger: zaptest.NewLogger(t)})

	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestDoRequestBodyReadFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\n{\"value\":"))
		conn.Close()
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zaptest.NewLogger(t)})

	var out echoBody
	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, &out)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "expected NetworkError, got %v", err)
	assert.Contains(t, err.Error(), "read response body")
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer sk-secret")
	h.Set("Accept", "application/json")

	redacted := redactHeaders(h)
	assert.Equal(t, "Bearer ***", redacted.Get("Authorization"))
	assert.Equal(t, "application/json", redacted.Get("Accept"))
	assert.Equal(t, "Bearer sk-secret", h.Get("Authorization"))
}
