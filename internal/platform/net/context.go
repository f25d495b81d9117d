// Package net carries request-scoped values and the transport-neutral reply envelope
package net

import (
	"context"

	"holidays/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyEntity ctxKey = "entity"

// WithRequest stores the request id and queried entity on ctx, for both the
// transport and the request-scoped logger
func WithRequest(ctx context.Context, reqID, entity string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if entity != "" {
		ctx = context.WithValue(ctx, keyEntity, entity)
	}
	if reqID == "" && entity == "" {
		return ctx
	}
	return logger.WithRequest(ctx, reqID, entity)
}

// RequestID returns the request id on ctx, "" if none
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Entity returns the entity code a handler recorded on ctx
func Entity(ctx context.Context) string {
	s, _ := ctx.Value(keyEntity).(string)
	return s
}
