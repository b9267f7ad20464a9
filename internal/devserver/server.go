// Package devserver is an in-memory implementation of the notes backend API
// for local development and end-to-end tests of the client.
//
// Routes:
//
//	POST   /auth/register   → register
//	POST   /auth/login      → login
//	POST   /auth/logout     → logout (auth)
//	GET    /auth/me         → me (auth)
//	GET    /notes           → listNotes (auth)
//	POST   /notes           → createNote (auth)
//	PUT    /notes/{id}      → updateNote (auth)
//	DELETE /notes/{id}      → deleteNote (auth)
//
// Tokens are HS256 JWTs, accepted from the Authorization header or the
// auth_token cookie set on login. Nothing survives a restart.
package devserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	tokenCookie   = "auth_token"
	tokenValidity = 24 * time.Hour
)

// Server holds the in-memory state behind the handlers.
type Server struct {
	store  *memStore
	secret []byte
	log    *zap.Logger
	now    func() time.Time
}

// New returns the HTTP handler of a fresh, empty backend signing tokens
// with secret.
func New(logger *zap.Logger, secret []byte) http.Handler {
	return newServer(logger, secret).routes()
}

func newServer(logger *zap.Logger, secret []byte) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:  newMemStore(),
		secret: secret,
		log:    logger,
		now:    time.Now,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(s.requestLogging)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/logout", s.logout)
			r.Get("/me", s.me)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.listNotes)
		r.Post("/", s.createNote)
		r.Put("/{id}", s.updateNote)
		r.Delete("/{id}", s.deleteNote)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
