// Package router exposes domain methods as JSON endpoints. A handler is a
// plain domain function; the router binds the request, runs the middlewares
// of its branch and writes the response envelope.
package router

import (
	"context"
	"net/http"

	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context, for
// example to attach the authenticated user; returning an error aborts the
// request with that error's envelope.
type MiddlewareFunc func(ctx context.Context, r *http.Request) (context.Context, error)

type Router struct {
	mux     *http.ServeMux
	ctx     context.Context
	befores []MiddlewareFunc
}

// New creates a router over a base context that carries the configs, logger
// and database every request starts from.
func New(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), ctx: ctx}
}

// Branch returns a router sharing the same mux whose middleware list can
// diverge from this one.
func (r *Router) Branch() *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{mux: r.mux, ctx: r.ctx, befores: befores}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return cors.AllowAll().Handler(r.mux)
}
