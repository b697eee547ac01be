package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/readinglog/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type catalogHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   catalog
}

func newCatalogHandler(catalog catalog) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder: NewResponder(logger, nil),
		logger:    logger,
		catalog:   catalog,
	}
}

// getCover reports the cover URL for an ISBN and whether the covers service has it.
// A failed probe is reported as exists=false, never as an error.
func (h catalogHandler) getCover() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn := strings.TrimSpace(r.URL.Query().Get("isbn"))
		if isbn == "" {
			h.responder.WriteError(w, errs.NewMissingQueryParamError("isbn"))
			return
		}

		resp := CoverResponse{ISBN: isbn}
		if cover, exists := h.catalog.CoverExists(r.Context(), isbn); exists {
			resp.Cover = &cover
			resp.Exists = true
		}
		h.responder.WriteJSON(w, http.StatusOK, resp)
	}
}

func (h catalogHandler) searchByTitle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimSpace(r.URL.Query().Get("title"))
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingQueryParamError("title"))
			return
		}

		results, err := h.catalog.SearchByTitle(r.Context(), title)
		if err != nil {
			logger := requestLogger(h.logger, r)
			logger.Warn().Err(err).Str("title", title).Bool("upstream", errs.IsUpstreamError(err)).Msg("Catalog search failed")
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, SearchResponse{
			Query:   title,
			Results: results,
		})
	}
}
