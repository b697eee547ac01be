package views

import (
	"testing"
	"time"

	"github.com/rpupo63/readinglog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNewParsesEveryPage(t *testing.T) {
	blog, err := New(Blog)
	require.NoError(t, err)
	for _, page := range []string{"index", "show", "edit", "notfound"} {
		assert.Contains(t, blog.pages, page)
	}

	books, err := New(BookNotes)
	require.NoError(t, err)
	for _, page := range []string{"index", "new", "show", "edit", "notfound", "error"} {
		assert.Contains(t, books.pages, page)
	}

	_, err = New(App("missing"))
	assert.Error(t, err)
}

func TestRenderUnknownPage(t *testing.T) {
	_, err := MustNew(Blog).Render("nope", Page{})
	assert.Error(t, err)
}

func TestRenderBlogPagesEscapeInput(t *testing.T) {
	r := MustNew(Blog)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	post := models.Post{ID: "1", Title: "<b>Hi</b>", Content: "body", CreatedAt: now, UpdatedAt: now}

	body, err := r.Render("index", Page{
		AppName:    "Blog",
		PageTitle:  "All Posts",
		Error:      models.PostRequiredMessage,
		Posts:      []models.Post{post},
		PostValues: models.PostInput{Title: "draft"},
	})
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, models.PostRequiredMessage)
	assert.Contains(t, html, `value="draft"`)
	assert.Contains(t, html, "&lt;b&gt;Hi&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Hi</b>")

	body, err = r.Render("show", Page{AppName: "Blog", PageTitle: post.Title, Post: &post})
	require.NoError(t, err)
	assert.Contains(t, string(body), `action="/posts/1/delete"`)
	assert.Contains(t, string(body), "Mar 1, 2024 12:00")
}

func TestRenderBookPages(t *testing.T) {
	r := MustNew(BookNotes)
	author, isbn, rating := "Frank Herbert", "0441013593", 4.5
	read := datatypes.Date(time.Date(2023, 7, 9, 0, 0, 0, 0, time.UTC))
	book := models.Book{ID: 7, Title: "Dune", Author: &author, ISBN: &isbn, Rating: &rating, DateRead: &read}

	body, err := r.Render("index", Page{
		AppName:  "Book Notes",
		Books:    []models.Book{book, {ID: 8, Title: "Bare"}},
		Sort:     models.SortTitle,
		SortKeys: models.SortKeys,
	})
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, `href="/books/7"`)
	assert.Contains(t, html, "by Frank Herbert")
	assert.Contains(t, html, "rated 4.5")
	assert.Contains(t, html, "read 2023-07-09")
	assert.Contains(t, html, "<strong>title</strong>")
	assert.Contains(t, html, `href="/?sort=rating"`)

	body, err = r.Render("show", Page{Book: &book, Cover: "http://covers.test/b/isbn/0441013593-M.jpg"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `src="http://covers.test/b/isbn/0441013593-M.jpg"`)
	assert.Contains(t, string(body), `action="/books/7?_method=DELETE"`)

	bare := models.Book{ID: 8, Title: "Bare"}
	body, err = r.Render("show", Page{Book: &bare})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "<img")

	body, err = r.Render("edit", Page{ID: "7", BookValues: book.Input()})
	require.NoError(t, err)
	assert.Contains(t, string(body), `value="2023-07-09"`)
	assert.Contains(t, string(body), `action="/books/7?_method=PUT"`)
}
