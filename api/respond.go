package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/readinglog/errs"
	"github.com/rpupo63/readinglog/views"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
	pages  *views.Renderer
}

func NewResponder(logger zerolog.Logger, pages *views.Renderer) Responder {
	return Responder{logger: logger, pages: pages}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// headers must be set before WriteHeader or they are dropped
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes {"error": message}. Only the client-safe message of an
// ApiErr is sent; details and causes go to the log.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}
	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{Error: apiErr.Message()})
}

// Render writes an HTML page with the given status.
func (r Responder) Render(w http.ResponseWriter, status int, page string, data views.Page) {
	body, err := r.pages.Render(page, data)
	if err != nil {
		r.logger.Error().Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// Redirect sends the browser to path with a GET (303 See Other).
func (r Responder) Redirect(w http.ResponseWriter, req *http.Request, path string) {
	http.Redirect(w, req, path, http.StatusSeeOther)
}
