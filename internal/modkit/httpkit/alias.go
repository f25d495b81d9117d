// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "holidays/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope
	// Response is the HTTP response type
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NotModified returns a bodiless 304
func NotModified() Response { return phttp.NotModified() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON decodes and validates a T body, then calls fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Query binds and validates T from the query string, then calls fn
func Query[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.QueryHandler(fn) }

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.CallHandler(fn) }

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
