package api

import (
	"context"

	"github.com/rpupo63/readinglog/models"
	"github.com/rpupo63/readinglog/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler    blogHandler
	bookHandler    bookHandler
	catalogHandler catalogHandler
}

// postStore is the blog storage used by the handlers. *database.PostStore satisfies it.
type postStore interface {
	List() []models.Post
	Find(id string) (models.Post, bool)
	Create(in models.PostInput) models.Result[models.Post]
	Update(id string, in models.PostInput) models.Result[models.Post]
	Delete(id string)
}

// bookStore is the Book Notes storage. *database.BookRepo satisfies it.
type bookStore interface {
	FindAll(ctx context.Context, sort models.SortKey) ([]models.Book, error)
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, in models.BookInput) models.Result[models.Book]
	Update(ctx context.Context, id int64, in models.BookInput) models.Result[models.Book]
	Delete(ctx context.Context, id int64) error
}

// catalog is the external book metadata source. *services.OpenLibrary satisfies it.
type catalog interface {
	CoverURL(isbn string) string
	CoverExists(ctx context.Context, isbn string) (string, bool)
	SearchByTitle(ctx context.Context, title string) ([]services.SearchResult, error)
}

// ErrorResponse is the JSON body of every failed /api call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CoverResponse is the body of GET /api/cover. Cover is null unless the image exists.
type CoverResponse struct {
	ISBN   string `json:"isbn"`
	Cover  *string `json:"cover"`
	Exists bool   `json:"exists"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string                  `json:"query"`
	Results []services.SearchResult `json:"results"`
}
