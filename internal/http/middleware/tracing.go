package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware opens an OpenCensus span per request. Installed with
// router.Use it runs after route matching, so span names use the route
// template and /api/menu/{id} aggregates across ids.
func TracingMiddleware(next http.Handler) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.client_ip", ClientIP(r)),
			)
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
			w = &statusRecorder{ResponseWriter: w, span: span}
		}
		next.ServeHTTP(w, r)
	})

	return &ochttp.Handler{
		Handler:          inner,
		FormatSpanName:   spanName,
		IsPublicEndpoint: true,
	}
}

func spanName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return r.Method + " " + tpl
		}
	}
	return r.Method + " " + r.URL.Path
}

// statusRecorder marks the span failed for 4xx and 5xx responses
type statusRecorder struct {
	http.ResponseWriter
	span *trace.Span
}

func (s *statusRecorder) WriteHeader(code int) {
	s.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= 400 {
		s.span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: http.StatusText(code)})
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
