package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Middleware wraps a single route
type Middleware func(http.Handler) http.Handler

// Guards are the per route wrappers handlers pick from when registering.
// A nil guard lets the request through untouched.
type Guards struct {
	Auth  Middleware
	Form  Middleware
	Visit Middleware
}

func (g Guards) auth(h http.HandlerFunc) http.Handler  { return apply(g.Auth, h) }
func (g Guards) form(h http.HandlerFunc) http.Handler  { return apply(g.Form, h) }
func (g Guards) visit(h http.HandlerFunc) http.Handler { return apply(g.Visit, h) }

func apply(mw Middleware, h http.Handler) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}

// RouteRegistrar is implemented by every handler in this package
type RouteRegistrar interface {
	RegisterRoutes(r *mux.Router, guards Guards)
}

// NewRouter mounts every registrar on a fresh router with JSON 404 and 405
// responses.
func NewRouter(guards Guards, registrars ...RouteRegistrar) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	for _, reg := range registrars {
		reg.RegisterRoutes(r, guards)
	}
	return r
}
