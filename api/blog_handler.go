package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/readinglog/models"
	"github.com/rpupo63/readinglog/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const blogAppName = "Blog"

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     postStore
}

func newBlogHandler(posts postStore, pages *views.Renderer) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger, pages),
		logger:    logger,
		posts:     posts,
	}
}

func (h blogHandler) page(title string) views.Page {
	return views.Page{AppName: blogAppName, PageTitle: title}
}

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id)
}

func postInputFrom(r *http.Request) models.PostInput {
	return models.PostInput{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}
}

// listPosts renders every post, most recently updated first, above the create form.
func (h blogHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := h.page("All Posts")
		page.Posts = h.posts.List()
		h.responder.Render(w, http.StatusOK, "index", page)
	}
}

func (h blogHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := postInputFrom(r)

		result := h.posts.Create(in)
		if result.Outcome != models.OutcomePersisted {
			page := h.page("All Posts")
			page.Posts = h.posts.List()
			page.Error = result.Message
			page.PostValues = in
			h.responder.Render(w, http.StatusBadRequest, "index", page)
			return
		}

		h.responder.Redirect(w, r, postPath(result.Record.ID))
	}
}

func (h blogHandler) showPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "postID")

		post, ok := h.posts.Find(id)
		if !ok {
			h.renderNotFound(w, id)
			return
		}

		page := h.page(post.Title)
		page.Post = &post
		h.responder.Render(w, http.StatusOK, "show", page)
	}
}

func (h blogHandler) editPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "postID")

		post, ok := h.posts.Find(id)
		if !ok {
			h.renderNotFound(w, id)
			return
		}

		page := h.page("Edit: " + post.Title)
		page.ID = post.ID
		page.PostValues = models.PostInput{Title: post.Title, Content: post.Content}
		h.responder.Render(w, http.StatusOK, "edit", page)
	}
}

// updatePost answers 404 for an unknown id before looking at the submission.
func (h blogHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "postID")
		in := postInputFrom(r)

		result := h.posts.Update(id, in)
		switch result.Outcome {
		case models.OutcomePersisted:
			h.responder.Redirect(w, r, postPath(result.Record.ID))
		case models.OutcomeNotFound:
			h.renderNotFound(w, id)
		default:
			page := h.page("Edit: " + result.Record.Title)
			page.ID = id
			page.Error = result.Message
			page.PostValues = in
			h.responder.Render(w, http.StatusBadRequest, "edit", page)
		}
	}
}

// deletePost always redirects home; deleting an unknown id is a no-op.
func (h blogHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "postID")
		h.posts.Delete(id)
		h.logger.Debug().Str("postID", id).Msg("post deleted")
		h.responder.Redirect(w, r, "/")
	}
}

func (h blogHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderNotFound(w, "")
	}
}

func (h blogHandler) renderNotFound(w http.ResponseWriter, id string) {
	page := h.page("Not Found")
	page.ID = id
	h.responder.Render(w, http.StatusNotFound, "notfound", page)
}
