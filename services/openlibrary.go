package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/readinglog/config"
	"github.com/rpupo63/readinglog/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	openLibraryName        = "Open Library"
	defaultOpenLibraryURL  = "https://openlibrary.org"
	defaultCoversURL       = "https://covers.openlibrary.org"
	searchLimit            = 5
	coverSize              = "M"
	maxSearchResponseBytes = 4 << 20
)

// SearchResult is one normalized match from the Open Library catalog.
type SearchResult struct {
	Title            string  `json:"title"`
	Author           *string `json:"author"`
	FirstPublishYear *int    `json:"first_publish_year"`
	ISBN             *string `json:"isbn"`
	Cover            *string `json:"cover"`
}

// openLibrarySearchResponse is the subset of /search.json we read
type openLibrarySearchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		ISBN             []string `json:"isbn"`
	} `json:"docs"`
}

// OpenLibrary talks to the public Open Library catalog and covers service.
// Calls are made once per incoming request: no caching, no retries.
type OpenLibrary struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	logger     zerolog.Logger
}

type OpenLibraryOption func(*OpenLibrary)

func WithHTTPClient(c *http.Client) OpenLibraryOption {
	return func(o *OpenLibrary) {
		o.httpClient = c
	}
}

func WithBaseURL(u string) OpenLibraryOption {
	return func(o *OpenLibrary) {
		o.baseURL = strings.TrimSuffix(u, "/")
	}
}

func WithCoversURL(u string) OpenLibraryOption {
	return func(o *OpenLibrary) {
		o.coversURL = strings.TrimSuffix(u, "/")
	}
}

func NewOpenLibrary(opts ...OpenLibraryOption) *OpenLibrary {
	o := &OpenLibrary{
		httpClient: &http.Client{},
		baseURL:    defaultOpenLibraryURL,
		coversURL:  defaultCoversURL,
		logger:     log.With().Str("service", "openLibrary").Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewOpenLibraryFromConfig reads OPENLIBRARY_URL, OPENLIBRARY_COVERS_URL and
// OPENLIBRARY_TIMEOUT_SECONDS (0, the default, means no client timeout).
func NewOpenLibraryFromConfig(c map[string]string) *OpenLibrary {
	timeout := time.Duration(config.GetInt(c, "OPENLIBRARY_TIMEOUT_SECONDS", 0)) * time.Second
	return NewOpenLibrary(
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithBaseURL(config.GetString(c, "OPENLIBRARY_URL", defaultOpenLibraryURL)),
		WithCoversURL(config.GetString(c, "OPENLIBRARY_COVERS_URL", defaultCoversURL)),
	)
}

// CoverURL derives the medium-size cover image URL for an ISBN.
func (o *OpenLibrary) CoverURL(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-%s.jpg", o.coversURL, url.PathEscape(isbn), coverSize)
}

// CoverExists probes the cover URL with a HEAD request. Any failure, including a
// transport error, is reported as a missing cover.
func (o *OpenLibrary) CoverExists(ctx context.Context, isbn string) (string, bool) {
	coverURL := o.CoverURL(isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, coverURL, nil)
	if err != nil {
		o.logger.Debug().Err(err).Str("isbn", isbn).Msg("Failed to build cover probe")
		return coverURL, false
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.logger.Debug().Err(err).Str("isbn", isbn).Msg("Cover probe failed")
		return coverURL, false
	}
	defer resp.Body.Close()

	return coverURL, resp.StatusCode >= 200 && resp.StatusCode < 300
}

// SearchByTitle asks the catalog for at most five matches. Every failure is
// reported as an upstream error and no partial results are returned.
func (o *OpenLibrary) SearchByTitle(ctx context.Context, title string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", fmt.Sprint(searchLimit))
	searchURL := o.baseURL + "/search.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, errs.NewUpstreamError(openLibraryName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewUpstreamError(openLibraryName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxSearchResponseBytes))
		return nil, errs.NewUpstreamError(openLibraryName, &errs.UpstreamStatusError{URL: searchURL, StatusCode: resp.StatusCode})
	}

	var body openLibrarySearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSearchResponseBytes)).Decode(&body); err != nil {
		return nil, errs.NewUpstreamError(openLibraryName, fmt.Errorf("decode search response: %w", err))
	}

	docs := body.Docs
	if len(docs) > searchLimit {
		docs = docs[:searchLimit]
	}

	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		result := SearchResult{Title: doc.Title}
		if len(doc.AuthorName) > 0 && doc.AuthorName[0] != "" {
			result.Author = &doc.AuthorName[0]
		}
		if doc.FirstPublishYear != 0 {
			year := doc.FirstPublishYear
			result.FirstPublishYear = &year
		}
		if len(doc.ISBN) > 0 && doc.ISBN[0] != "" {
			isbn := doc.ISBN[0]
			cover := o.CoverURL(isbn)
			result.ISBN = &isbn
			result.Cover = &cover
		}
		results = append(results, result)
	}

	o.logger.Debug().Str("title", title).Int("numFound", body.NumFound).Int("returned", len(results)).Msg("Open Library search")
	return results, nil
}
