package api

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
	methodOverrideKey  = "_method"
)

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// RequestID keeps a caller supplied X-Request-ID or assigns a new UUID, echoes
// it on the response and stores it on the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), requestID)))
	})
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes through a _method query or form value.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get(methodOverrideKey)
			if override == "" {
				override = r.PostFormValue(methodOverrideKey)
			}

			switch method := strings.ToUpper(strings.TrimSpace(override)); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}

		next.ServeHTTP(w, r)
	})
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("requestID", ctxGetRequestID(r.Context())).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestID", ctxGetRequestID(r.Context())).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs one line per request at a level picked from
// the status code. Output is coloured when the global logger writes to a console.
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	accessLogger := log.With().Str("component", "http").Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = accessLogger.Error()
		case srw.status >= 400:
			logEvent = accessLogger.Warn()
		default:
			logEvent = accessLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Str("requestID", ctxGetRequestID(r.Context())).
			Msg("HTTP Request")
	})
}
