package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRouterFallbacks(t *testing.T) {
	router := newTestRouter(NewHealthHandler(nil, logger.NewTestLogger(t)))

	w := do(router, http.MethodGet, "/api/nothing-here", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decodeMap(t, w)["error"])

	w = do(router, http.MethodDelete, "/api/health", nil, false)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := newTestRouter(NewHealthHandler(func(context.Context) error { return nil }, logger.NewTestLogger(t)))
	w := do(ok, http.MethodGet, "/api/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := newTestRouter(NewHealthHandler(func(context.Context) error { return errors.New("db gone") }, logger.NewTestLogger(t)))
	w = do(down, http.MethodGet, "/api/health", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
