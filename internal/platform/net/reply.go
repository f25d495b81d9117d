package net

import (
	"net/http"

	perr "holidays/internal/platform/errors"
)

// Wire is the envelope every transport writes
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// HTTPStatus maps an error to a status; nil is 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}

// Reply builds a success envelope with the given status
func Reply(status int, data any, reqID string) Wire {
	return Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, Reply(http.StatusOK, data, reqID)
}

// Error builds the envelope for err; nil degrades to OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status := HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
	}
}
