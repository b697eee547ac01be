package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/readinglog/database"
	"github.com/rpupo63/readinglog/models"
	"github.com/rpupo63/readinglog/services"
	"github.com/rpupo63/readinglog/views"
)

// fakeBookStore mirrors BookRepo's contract in memory. Setting fail makes every
// call behave as if the database were unreachable.
type fakeBookStore struct {
	mu       sync.Mutex
	books    map[int64]models.Book
	nextID   int64
	fail     error
	lastSort models.SortKey
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[int64]models.Book{}, nextID: 1}
}

func (s *fakeBookStore) FindAll(_ context.Context, sort models.SortKey) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSort = sort
	if s.fail != nil {
		return nil, s.fail
	}
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	models.SortBooks(out, sort)
	return out, nil
}

func (s *fakeBookStore) FindByID(_ context.Context, id int64) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return nil, s.fail
	}
	b, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *fakeBookStore) Create(_ context.Context, in models.BookInput) models.Result[models.Book] {
	in = in.Normalize()
	if in.Validate() != nil {
		return models.Rejected[models.Book](models.BookTitleRequiredMessage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return models.StoreFailed[models.Book]("Failed to save book.", s.fail)
	}
	book := in.Book()
	book.ID = s.nextID
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	s.nextID++
	s.books[book.ID] = book
	return models.Persisted(book)
}

func (s *fakeBookStore) Update(_ context.Context, id int64, in models.BookInput) models.Result[models.Book] {
	in = in.Normalize()
	if in.Validate() != nil {
		return models.Rejected[models.Book](models.BookTitleRequiredMessage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return models.StoreFailed[models.Book]("Failed to update book.", s.fail)
	}
	existing, ok := s.books[id]
	if !ok {
		return models.NotFound[models.Book]()
	}
	book := in.Book()
	book.ID = id
	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = time.Now()
	s.books[id] = book
	return models.Persisted(book)
}

func (s *fakeBookStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}
	delete(s.books, id)
	return nil
}

func (s *fakeBookStore) get(id int64) (models.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	return b, ok
}

func (s *fakeBookStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func newTestBlogRouter(t *testing.T) (http.Handler, *database.PostStore) {
	t.Helper()
	store := database.NewInMemory().PostStore()
	return NewBlogRouter(store, views.MustNew(views.Blog)), store
}

// newTestBookRouter points the catalog at upstream, which may be nil when a test
// never reaches the network.
func newTestBookRouter(t *testing.T, upstream *httptest.Server, c map[string]string) (http.Handler, *fakeBookStore) {
	t.Helper()
	opts := []services.OpenLibraryOption{services.WithCoversURL("http://covers.test")}
	if upstream != nil {
		opts = []services.OpenLibraryOption{
			services.WithHTTPClient(upstream.Client()),
			services.WithBaseURL(upstream.URL),
			services.WithCoversURL(upstream.URL),
		}
	}

	store := newFakeBookStore()
	return NewBookRouter(store, services.NewOpenLibrary(opts...), views.MustNew(views.BookNotes), withConfig(c)), store
}

// serve runs one request through h. A non-nil form is sent url-encoded.
func serve(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
