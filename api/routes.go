package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// setupBlogRoutes registers the post lifecycle. Forms reach PUT and DELETE
// through MethodOverride, so each mutation accepts both spellings.
func setupBlogRoutes(r chi.Router, handlers *routeHandlers) {
	h := handlers.blogHandler

	r.Get("/", h.listPosts())
	r.Post("/posts", h.createPost())

	r.Route("/posts/{postID}", func(r chi.Router) {
		r.Get("/", h.showPost())
		r.Post("/", h.updatePost())
		r.Put("/", h.updatePost())

		r.Get("/edit", h.editPost())
		r.Post("/edit", h.updatePost())

		r.Post("/delete", h.deletePost())
		r.Delete("/delete", h.deletePost())
	})
}

func setupBookRoutes(r chi.Router, handlers *routeHandlers) {
	h := handlers.bookHandler

	r.Get("/", h.listBooks())
	r.Get("/books/new", h.newBook())
	r.Post("/books", h.createBook())

	r.Route("/books/{bookID}", func(r chi.Router) {
		r.Get("/", h.showBook())
		r.Post("/", h.updateBook())
		r.Put("/", h.updateBook())
		r.Delete("/", h.deleteBook())

		r.Get("/edit", h.editBook())

		r.Post("/delete", h.deleteBook())
		r.Delete("/delete", h.deleteBook())
	})
}

// setupCatalogRoutes exposes the JSON lookups used by the book form. They are
// the only routes a browser on another origin may call.
func setupCatalogRoutes(r chi.Router, handlers *routeHandlers, acceptedOrigins []string) {
	h := handlers.catalogHandler

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: acceptedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))

		r.Get("/cover", h.getCover())
		r.Get("/search", h.searchByTitle())
	})
}
