package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

type keyType string

const (
	requestIDKey keyType = "requestID"
)

// ctxWithRequestID adds a request ID to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID returns the request ID, or "" outside of the RequestID middleware
func ctxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// requestLogger tags logger with the request ID of r.
func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	return logger.With().Str("requestID", ctxGetRequestID(r.Context())).Logger()
}
