package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestTracingMiddleware(t *testing.T) {
	var hadSpan bool
	router := mux.NewRouter()
	router.Use(TracingMiddleware)
	router.HandleFunc("/api/menu/{id}", func(w http.ResponseWriter, r *http.Request) {
		hadSpan = trace.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/menu/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.True(t, hadSpan)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpanName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	assert.Equal(t, "GET /api/health", spanName(req))

	router := mux.NewRouter()
	var name string
	router.HandleFunc("/api/menu/{id}", func(w http.ResponseWriter, r *http.Request) {
		name = spanName(r)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/menu/42", nil))
	assert.Equal(t, "PUT /api/menu/{id}", name)
}
