package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rpupo63/readinglog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, h http.Handler, title, content string) string {
	t.Helper()
	rec := serve(h, http.MethodPost, "/posts", url.Values{"title": {title}, "content": {content}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return rec.Header().Get("Location")
}

func TestBlogCreateRedirectsToShowPage(t *testing.T) {
	h, store := newTestBlogRouter(t)

	location := createPost(t, h, "  Hello  ", "World")
	assert.Equal(t, "/posts/1", location)
	assert.Equal(t, 1, store.Len())

	rec := serve(h, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Hello</h1>")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestBlogCreateRejectsMissingField(t *testing.T) {
	h, store := newTestBlogRouter(t)

	rec := serve(h, http.MethodPost, "/posts", url.Values{"title": {"A"}, "content": {""}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), models.PostRequiredMessage)
	assert.Contains(t, rec.Body.String(), `value="A"`)
	assert.Equal(t, 0, store.Len())
}

func TestBlogListShowsNewestFirst(t *testing.T) {
	h, _ := newTestBlogRouter(t)
	createPost(t, h, "first-post", "a")
	createPost(t, h, "second-post", "b")

	rec := serve(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "second-post"), strings.Index(body, "first-post"))
}

func TestBlogUnknownPostIsNotFound(t *testing.T) {
	h, store := newTestBlogRouter(t)

	for _, tc := range []struct {
		method, target string
		form           url.Values
	}{
		{http.MethodGet, "/posts/99", nil},
		{http.MethodGet, "/posts/99/edit", nil},
		{http.MethodPost, "/posts/99/edit", url.Values{"title": {"T"}, "content": {"C"}}},
		{http.MethodPost, "/posts/99/edit", url.Values{"title": {""}, "content": {""}}},
		{http.MethodPut, "/posts/99", url.Values{"title": {"T"}, "content": {"C"}}},
	} {
		rec := serve(h, tc.method, tc.target, tc.form)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.target)
		assert.Contains(t, rec.Body.String(), "There is no post with id 99")
	}
	assert.Equal(t, 0, store.Len())
}

func TestBlogEditAndUpdate(t *testing.T) {
	h, store := newTestBlogRouter(t)
	location := createPost(t, h, "Old", "Body")

	rec := serve(h, http.MethodGet, location+"/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Old"`)
	assert.Contains(t, rec.Body.String(), "<title>Edit: Old</title>")

	rec = serve(h, http.MethodPost, location+"/edit", url.Values{"title": {"New"}, "content": {"Body 2"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, location, rec.Header().Get("Location"))

	post, ok := store.Find("1")
	require.True(t, ok)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "Body 2", post.Content)

	rec = serve(h, http.MethodPost, location+"?_method=PUT", url.Values{"title": {"Newer"}, "content": {"Body 3"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	post, _ = store.Find("1")
	assert.Equal(t, "Newer", post.Title)
}

func TestBlogUpdateRejectionKeepsRecord(t *testing.T) {
	h, store := newTestBlogRouter(t)
	location := createPost(t, h, "Keep", "Me")

	rec := serve(h, http.MethodPost, location+"/edit", url.Values{"title": {"Changed"}, "content": {"  "}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), models.PostRequiredMessage)
	assert.Contains(t, rec.Body.String(), `value="Changed"`)
	assert.Contains(t, rec.Body.String(), "<title>Edit: Keep</title>")
	post, _ := store.Find("1")
	assert.Equal(t, "Keep", post.Title)
}

func TestBlogDeleteIsIdempotent(t *testing.T) {
	h, store := newTestBlogRouter(t)
	location := createPost(t, h, "Gone", "Soon")

	rec := serve(h, http.MethodPost, location+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 0, store.Len())

	rec = serve(h, http.MethodDelete, location+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, location, nil).Code)
}

func TestBlogUnmatchedRoutesAreNotFound(t *testing.T) {
	h, _ := newTestBlogRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/nope"},
		{http.MethodDelete, "/"},
		{http.MethodGet, "/posts"},
		{http.MethodGet, "/posts/1/delete"},
	} {
		rec := serve(h, tc.method, tc.target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.target)
		assert.Contains(t, rec.Body.String(), "Not Found")
	}
}
