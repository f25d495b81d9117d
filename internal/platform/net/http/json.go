package http

import (
	"net/http"

	"holidays/internal/platform/net/http/bind"
)

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// JSONHandler decodes and validates a T body before calling fn.
// fn may return a Response to control status or headers.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// QueryHandler binds and validates T from the query string before calling fn
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// CallHandler calls fn without reading the request
func CallHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return wrap(fn(r)) })
}
