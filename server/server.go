// Package server is the web surface of the importer: landing page, OAuth2
// redirect dance, the import form, the review page, and the final export.
package server

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/importer"
	"github.com/aron/nikeplus-to-runkeeper/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// SessionStore persists the signed-in user between requests.
type SessionStore interface {
	CreateSession(ctx context.Context, session store.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*store.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	SetFlash(ctx context.Context, id uuid.UUID, message string) error
	TakeFlash(ctx context.Context, id uuid.UUID) (string, error)
}

// Destination is the OAuth2 side of the Runkeeper client the server needs
// to sign users in.
type Destination interface {
	AuthorizeURL() string
	ExchangeToken(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, accessToken string) (*healthgraph.User, error)
}

// Importer runs the fetch-translate and submit phases of an import.
type Importer interface {
	Fetch(ctx context.Context, source importer.Source, cutoff *time.Time) ([]healthgraph.FitnessActivity, error)
	Submit(ctx context.Context, accessToken string, activities []healthgraph.FitnessActivity) int
}

// NewSource builds a source API client from the credentials a user submits
// on the import form. Injected so handler tests can stub the Nike+ side.
type NewSource func(email, password string) importer.Source

type Server struct {
	server      *http.Server
	sessions    SessionStore
	destination Destination
	importer    Importer
	newSource   NewSource
	templates   *template.Template
}

func New(addr string, sessions SessionStore, destination Destination, imp Importer, newSource NewSource) *Server {
	s := &Server{
		server:      &http.Server{Addr: addr},
		sessions:    sessions,
		destination: destination,
		importer:    imp,
		newSource:   newSource,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
	}
	s.server.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/import", s.handleImportForm)
	r.Post("/import", s.handleImport)
	r.Post("/export", s.handleExport)
	r.Get("/logout", s.handleLogout)
	r.Get("/auth/runkeeper", s.handleAuth)
	r.Get("/auth/runkeeper/callback", s.handleCallback)

	return r
}

func (s *Server) Serve() error {
	log.Println("server: listening on", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Printf("server: failed to render %s: %v", name, err)
	}
}
