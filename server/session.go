package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aron/nikeplus-to-runkeeper/store"
)

const sessionCookie = "nikeplus-to-runkeeper"

// currentSession resolves the request's session cookie to a stored session.
// Returns nil for anonymous requests, unparseable cookies, and sessions
// that no longer exist.
func (s *Server) currentSession(r *http.Request) *store.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	session, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("server: failed to load session %s: %v", id, err)
		}
		return nil
	}
	return session
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
