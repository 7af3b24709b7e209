package rest

import (
	"net/http"
	"net/url"
)

// Request is what a handler receives after the deserialize step has run: the raw
// request facts plus the decoded entity (nil when the body was empty) and the
// request's stash.
type Request struct {
	// HTTP method of the request.
	Method string

	// Request headers as received.
	Header http.Header

	// Parsed query parameters.
	Query url.Values

	// Decoded request body, or nil if the body was empty.
	Entity interface{}

	// Request-scoped storage shared with the status helpers and serialize step.
	Stash Stash
}

// HandlerFunc is the application handler the pipeline wraps: it receives the
// decoded request and decides the response status (normally through a Responder
// helper, which also stashes the response entity).
type HandlerFunc func(request *Request) StatusResponse

// Middleware wraps a HandlerFunc to add behavior before or after the core handler.
// The pipeline applies middleware as an explicit ordered list, first registered
// outermost.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps handler in the given middleware, first middleware outermost, and
// returns the composed handler.
func Chain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	for index := len(middleware) - 1; index >= 0; index-- {
		handler = middleware[index](handler)
	}
	return handler
}
