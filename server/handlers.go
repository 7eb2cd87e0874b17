package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/store"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.currentSession(r) != nil {
		http.Redirect(w, r, "/import", http.StatusFound)
		return
	}
	s.render(w, "index.tmpl", nil)
}

// period is one entry in the import form's date-range selector.
type period struct {
	Name  string
	Value string
}

type importFormData struct {
	Name    string
	Flash   string
	Periods []period
}

func (s *Server) handleImportForm(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession(r)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	flash, err := s.sessions.TakeFlash(r.Context(), session.ID)
	if err != nil {
		log.Printf("server: failed to take flash: %v", err)
	}

	now := time.Now()
	day := 24 * time.Hour
	s.render(w, "import.tmpl", importFormData{
		Name:  session.DisplayName(),
		Flash: flash,
		Periods: []period{
			{Name: "Last week", Value: now.Add(-7 * day).Format(time.RFC3339)},
			{Name: "Last 30 days", Value: now.Add(-30 * day).Format(time.RFC3339)},
			{Name: "Last year", Value: now.Add(-365 * day).Format(time.RFC3339)},
			{Name: "Everything", Value: ""},
		},
	})
}

// reviewActivity is one row of the review page. JSON carries the full
// translated activity through the confirmation form, so nothing needs to
// be stored server-side between review and export.
type reviewActivity struct {
	StartTime string
	Distance  float64
	Duration  float64
	Points    int
	JSON      string
}

type reviewData struct {
	Name       string
	Count      int
	Activities []reviewActivity
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession(r)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var cutoff *time.Time
	if since := r.PostForm.Get("activity_since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			s.flashAndRedirect(w, r, session.ID, "That date range was not recognised, please try again")
			return
		}
		cutoff = &parsed
	}

	source := s.newSource(r.PostForm.Get("email"), r.PostForm.Get("password"))
	activities, err := s.importer.Fetch(r.Context(), source, cutoff)
	if err != nil {
		log.Printf("server: import fetch failed: %v", err)
		http.Error(w, "failed to fetch activities from Nike+", http.StatusBadGateway)
		return
	}

	data := reviewData{
		Name:       session.DisplayName(),
		Count:      len(activities),
		Activities: make([]reviewActivity, 0, len(activities)),
	}
	for _, activity := range activities {
		payload, err := json.Marshal(activity)
		if err != nil {
			http.Error(w, "failed to encode activities", http.StatusInternalServerError)
			return
		}
		data.Activities = append(data.Activities, reviewActivity{
			StartTime: activity.StartTime.Format("2 Jan 2006 15:04"),
			Distance:  activity.TotalDistance,
			Duration:  activity.Duration,
			Points:    len(activity.Path),
			JSON:      string(payload),
		})
	}

	s.render(w, "export.tmpl", data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession(r)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	// A malformed payload fails only that activity, never the batch.
	var activities []healthgraph.FitnessActivity
	for _, payload := range r.PostForm["activities"] {
		var activity healthgraph.FitnessActivity
		err := json.Unmarshal([]byte(payload), &activity)
		if err != nil {
			log.Printf("server: skipping malformed activity payload: %v", err)
			continue
		}
		activities = append(activities, activity)
	}

	submitted := s.importer.Submit(r.Context(), session.AccessToken, activities)

	s.flashAndRedirect(w, r, session.ID, fmt.Sprintf("Successfully imported %d activities", submitted))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if session := s.currentSession(r); session != nil {
		err := s.sessions.DeleteSession(r.Context(), session.ID)
		if err != nil {
			log.Printf("server: failed to delete session: %v", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.destination.AuthorizeURL(), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		log.Println("server: oauth callback received without an authorization code")
		http.Error(w, "authentication error: no authorization code in callback", http.StatusBadRequest)
		return
	}

	accessToken, err := s.destination.ExchangeToken(r.Context(), code)
	if err != nil {
		log.Printf("server: token exchange failed: %v", err)
		http.Error(w, "failed to authenticate with Runkeeper", http.StatusBadGateway)
		return
	}

	user, err := s.destination.GetUser(r.Context(), accessToken)
	if err != nil {
		log.Printf("server: failed to fetch runkeeper user: %v", err)
		http.Error(w, "failed to authenticate with Runkeeper", http.StatusBadGateway)
		return
	}

	session := store.Session{
		ID:          uuid.New(),
		UserID:      user.UserID,
		AccessToken: accessToken,
		Username:    user.Username,
		Fullname:    user.Fullname,
	}
	err = s.sessions.CreateSession(r.Context(), session)
	if err != nil {
		log.Printf("server: failed to create session: %v", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/import", http.StatusFound)
}

func (s *Server) flashAndRedirect(w http.ResponseWriter, r *http.Request, id uuid.UUID, message string) {
	err := s.sessions.SetFlash(r.Context(), id, message)
	if err != nil {
		log.Printf("server: failed to set flash: %v", err)
	}
	http.Redirect(w, r, "/import", http.StatusSeeOther)
}
