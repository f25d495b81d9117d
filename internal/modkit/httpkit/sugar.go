package httpkit

import (
	"net/http"
)

// GetQuery mounts a query-bound handler under GET
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, Query(h))
}

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
