// Package http adapts chi to the platform router and writes the JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"holidays/internal/platform/logger"
	pnet "holidays/internal/platform/net"
)

// Envelope is the response body of every endpoint
type Envelope = pnet.Wire

// JSON writes v as application/json with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("response encode failed")
	}
}

// RespondError maps err to a status and error envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, body)
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning function to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent || status == stdhttp.StatusNotModified {
		w.WriteHeader(status)
		return
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	JSON(w, status, pnet.Reply(status, resp.Body, pnet.RequestID(r.Context())))
}

// WithHeader returns a copy of resp with an extra header
func (resp Response) WithHeader(key, value string) Response {
	h := resp.Header.Clone()
	if h == nil {
		h = stdhttp.Header{}
	}
	h.Set(key, value)
	resp.Header = h
	return resp
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NotModified returns a bodiless 304
func NotModified() Response { return Response{Status: stdhttp.StatusNotModified} }

// Error returns a response whose status comes from err
func Error(err error) Response { return Response{Body: err} }
