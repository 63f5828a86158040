package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func TestStartServiceSpan(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "ContentService", "Set")
	defer span.End()

	require.NotNil(t, span)
	assert.Same(t, span, trace.FromContext(ctx))
}

func TestEndSpan(t *testing.T) {
	_, span := trace.StartSpan(context.Background(), "ok")
	assert.NotPanics(t, func() { EndSpan(span, nil) })

	_, span = trace.StartSpan(context.Background(), "failing")
	assert.NotPanics(t, func() { EndSpan(span, errors.New("boom")) })
}

func TestTraceMethodWithResult(t *testing.T) {
	total, err := TraceMethodWithResult(context.Background(), "VisitorService", "Count", func(ctx context.Context) (int64, error) {
		assert.NotNil(t, trace.FromContext(ctx))
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)

	_, err = TraceMethodWithResult(context.Background(), "VisitorService", "Count", func(ctx context.Context) (int64, error) {
		return 0, errors.New("storage down")
	})
	assert.EqualError(t, err, "storage down")
}

func TestAddAttributeAndMarkSpanError(t *testing.T) {
	ctx, span := trace.StartSpan(context.Background(), "attrs")
	defer span.End()

	assert.NotPanics(t, func() {
		AddAttribute(ctx, "key", "home_content")
		AddAttribute(ctx, "count", int64(3))
		AddAttribute(ctx, "limit", 50)
		AddAttribute(ctx, "counted", true)
		AddAttribute(ctx, "ratio", 0.5)
		MarkSpanError(ctx, errors.New("boom"))
		MarkSpanError(ctx, nil)
	})

	// no span in context
	assert.NotPanics(t, func() {
		AddAttribute(context.Background(), "key", "value")
		MarkSpanError(context.Background(), errors.New("boom"))
	})
}

func TestWrapHTTPClient(t *testing.T) {
	client := WrapHTTPClient(nil)
	assert.Equal(t, 30*time.Second, client.Timeout)
	assert.NotNil(t, client.Transport)

	wrapped := WrapHTTPClient(&http.Client{Timeout: time.Minute})
	assert.Equal(t, time.Minute, wrapped.Timeout)
}

func TestWrapHTTPClientRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, root := trace.StartSpan(context.Background(), "client")
	defer root.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := WrapHTTPClient(nil).Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
