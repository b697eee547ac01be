package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/readinglog/errs"
	"github.com/rpupo63/readinglog/models"
	"github.com/rpupo63/readinglog/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	bookAppName = "Book Notes"

	loadBooksFailedMessage  = "Failed to load books."
	loadBookFailedMessage   = "Failed to load book."
	deleteBookFailedMessage = "Failed to delete book."
)

type bookHandler struct {
	responder Responder
	logger    zerolog.Logger
	books     bookStore
	catalog   catalog
}

func newBookHandler(books bookStore, catalog catalog, pages *views.Renderer) bookHandler {
	logger := log.With().Str("handlerName", "bookHandler").Logger()

	return bookHandler{
		responder: NewResponder(logger, pages),
		logger:    logger,
		books:     books,
		catalog:   catalog,
	}
}

func (h bookHandler) page(title string) views.Page {
	return views.Page{AppName: bookAppName, PageTitle: title}
}

func bookPath(id int64) string {
	return "/books/" + strconv.FormatInt(id, 10)
}

// parseBookID reads {bookID}. Anything that is not a positive integer cannot
// name a row and is reported as not found.
func parseBookID(r *http.Request) (int64, string, bool) {
	raw := chi.URLParam(r, "bookID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, raw, false
	}
	return id, raw, true
}

func bookInputFrom(r *http.Request) models.BookInput {
	return models.BookInput{
		Title:    r.PostFormValue("title"),
		Author:   r.PostFormValue("author"),
		ISBN:     r.PostFormValue("isbn"),
		Rating:   r.PostFormValue("rating"),
		Notes:    r.PostFormValue("notes"),
		DateRead: r.PostFormValue("date_read"),
	}
}

func (h bookHandler) listBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sort := models.ParseSortKey(r.URL.Query().Get("sort"))

		page := h.page("My Books")
		page.Sort = sort
		page.SortKeys = models.SortKeys

		books, err := h.books.FindAll(r.Context(), sort)
		if err != nil {
			h.logStorageFailure(r, err, "Failed to list books")
			page.Error = loadBooksFailedMessage
			h.responder.Render(w, http.StatusInternalServerError, "index", page)
			return
		}

		page.Books = books
		h.responder.Render(w, http.StatusOK, "index", page)
	}
}

func (h bookHandler) newBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, http.StatusOK, "new", h.page("Add Book"))
	}
}

func (h bookHandler) createBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := bookInputFrom(r)

		result := h.books.Create(r.Context(), in)
		switch result.Outcome {
		case models.OutcomePersisted:
			h.responder.Redirect(w, r, bookPath(result.Record.ID))
		case models.OutcomeRejected:
			page := h.page("Add Book")
			page.Error = result.Message
			page.BookValues = in
			h.responder.Render(w, http.StatusBadRequest, "new", page)
		default:
			h.logStorageFailure(r, result.Err, "Failed to create book")
			page := h.page("Add Book")
			page.Error = result.Message
			page.BookValues = in
			h.responder.Render(w, http.StatusInternalServerError, "new", page)
		}
	}
}

func (h bookHandler) showBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, ok := h.loadBook(w, r)
		if !ok {
			return
		}

		page := h.page(book.Title)
		page.Book = book
		if book.ISBN != nil {
			page.Cover = h.catalog.CoverURL(*book.ISBN)
		}
		h.responder.Render(w, http.StatusOK, "show", page)
	}
}

func (h bookHandler) editBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, ok := h.loadBook(w, r)
		if !ok {
			return
		}

		page := h.page("Edit Book")
		page.ID = strconv.FormatInt(book.ID, 10)
		page.BookValues = book.Input()
		h.responder.Render(w, http.StatusOK, "edit", page)
	}
}

func (h bookHandler) updateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, raw, ok := parseBookID(r)
		if !ok {
			h.renderNotFound(w, raw)
			return
		}
		in := bookInputFrom(r)

		result := h.books.Update(r.Context(), id, in)
		switch result.Outcome {
		case models.OutcomePersisted:
			h.responder.Redirect(w, r, bookPath(id))
		case models.OutcomeNotFound:
			h.renderNotFound(w, raw)
		case models.OutcomeRejected:
			h.renderEditForm(w, http.StatusBadRequest, raw, in, result.Message)
		default:
			h.logStorageFailure(r, result.Err, "Failed to update book")
			h.renderEditForm(w, http.StatusInternalServerError, raw, in, result.Message)
		}
	}
}

// deleteBook redirects home whether or not the row existed.
func (h bookHandler) deleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _, ok := parseBookID(r)
		if !ok {
			h.responder.Redirect(w, r, "/")
			return
		}

		if err := h.books.Delete(r.Context(), id); err != nil {
			h.logStorageFailure(r, err, "Failed to delete book")
			h.renderError(w, deleteBookFailedMessage)
			return
		}

		h.responder.Redirect(w, r, "/")
	}
}

func (h bookHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderNotFound(w, "")
	}
}

// loadBook resolves {bookID} and writes the 404 or 500 page itself when it cannot.
func (h bookHandler) loadBook(w http.ResponseWriter, r *http.Request) (*models.Book, bool) {
	id, raw, ok := parseBookID(r)
	if !ok {
		h.renderNotFound(w, raw)
		return nil, false
	}

	book, err := h.books.FindByID(r.Context(), id)
	if err != nil {
		h.logStorageFailure(r, err, "Failed to load book")
		h.renderError(w, loadBookFailedMessage)
		return nil, false
	}
	if book == nil {
		h.renderNotFound(w, raw)
		return nil, false
	}
	return book, true
}

// logStorageFailure flags connection failures so they stand out from bad queries.
func (h bookHandler) logStorageFailure(r *http.Request, err error, msg string) {
	logger := requestLogger(h.logger, r)
	logger.Error().Err(err).
		Bool("databaseError", errs.IsDatabaseError(err)).
		Bool("connectionError", errs.IsDatabaseConnectionError(err)).
		Str("bookID", chi.URLParam(r, "bookID")).
		Str("sort", r.URL.Query().Get("sort")).
		Msg(msg)
}

func (h bookHandler) renderEditForm(w http.ResponseWriter, status int, id string, in models.BookInput, message string) {
	page := h.page("Edit Book")
	page.ID = id
	page.Error = message
	page.BookValues = in
	h.responder.Render(w, status, "edit", page)
}

func (h bookHandler) renderNotFound(w http.ResponseWriter, id string) {
	page := h.page("Not Found")
	page.ID = id
	h.responder.Render(w, http.StatusNotFound, "notfound", page)
}

func (h bookHandler) renderError(w http.ResponseWriter, message string) {
	page := h.page("Error")
	page.Error = message
	h.responder.Render(w, http.StatusInternalServerError, "error", page)
}
