package views

import "github.com/rpupo63/readinglog/models"

// Page is the data every template receives. Handlers fill only the fields their page reads.
type Page struct {
	AppName   string
	PageTitle string
	Error     string
	// ID is the raw path id on not-found and edit pages.
	ID string

	Posts      []models.Post
	Post       *models.Post
	PostValues models.PostInput

	Books      []models.Book
	Book       *models.Book
	BookValues models.BookInput
	Cover      string
	Sort       models.SortKey
	SortKeys   []models.SortKey
}
