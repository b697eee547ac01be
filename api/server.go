package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/readinglog/config"
	"github.com/rpupo63/readinglog/views"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewBlogServer serves the Blog application from posts.
func NewBlogServer(posts postStore, c map[string]string) (Server, error) {
	pages, err := views.New(views.Blog)
	if err != nil {
		return Server{}, fmt.Errorf("load blog templates: %w", err)
	}

	return newServer(c, NewBlogRouter(posts, pages)), nil
}

// NewBookServer serves the Book Notes application from books, with cover and
// search lookups answered by catalog.
func NewBookServer(books bookStore, catalog catalog, c map[string]string) (Server, error) {
	pages, err := views.New(views.BookNotes)
	if err != nil {
		return Server{}, fmt.Errorf("load book notes templates: %w", err)
	}

	return newServer(c, NewBookRouter(books, catalog, pages, withConfig(c))), nil
}

func newServer(c map[string]string, handler http.Handler) Server {
	port := config.GetString(c, "PORT", "3000")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}
}

type router struct {
	config map[string]string
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

// newBaseRouter installs the middleware shared by both applications and sends
// every unmatched path or verb to notFound.
func newBaseRouter(notFound http.HandlerFunc) *chi.Mux {
	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)
	chiRouter.Use(MethodOverride)

	chiRouter.NotFound(notFound)
	chiRouter.MethodNotAllowed(notFound)

	return chiRouter
}

func NewBlogRouter(posts postStore, pages *views.Renderer) *chi.Mux {
	handlers := &routeHandlers{
		blogHandler: newBlogHandler(posts, pages),
	}

	chiRouter := newBaseRouter(handlers.blogHandler.notFound())
	setupBlogRoutes(chiRouter, handlers)
	return chiRouter
}

func NewBookRouter(books bookStore, catalog catalog, pages *views.Renderer, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	handlers := &routeHandlers{
		bookHandler:    newBookHandler(books, catalog, pages),
		catalogHandler: newCatalogHandler(catalog),
	}

	chiRouter := newBaseRouter(handlers.bookHandler.notFound())
	setupBookRoutes(chiRouter, handlers)
	setupCatalogRoutes(chiRouter, handlers, config.GetList(router.config, "ACCEPTED_ORIGINS"))
	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

// Uptime reports how long ago the server was built.
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", s.Uptime()).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
