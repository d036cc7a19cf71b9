package server

import (
	"net/http"

	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

// handleHome renders the dashboard. It also owns the catch-all pattern,
// so anything that is not exactly "/" is a 404.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.URL.Path != "/" {
		s.notFoundPage(w, r, user)
		return
	}

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	events, err := conn.ListEvents(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		s.serverError(w, r, user)
		return
	}

	s.render(w, "home", s.page(w, r, user, templates.HomeData{Events: events}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	loginPage := func(errMsg string) templates.Page {
		return templates.Page{
			Title: s.config.AppTitle,
			Data:  templates.LoginData{Error: errMsg},
		}
	}

	if r.Method != http.MethodPost {
		s.render(w, "login", loginPage(""))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	user, ok := s.users.Authenticate(r.FormValue("username"), r.FormValue("pin"))
	if !ok {
		// Generic failure: never reveal whether the username existed.
		s.renderStatus(w, http.StatusUnauthorized, "login", loginPage("Invalid username or PIN"))
		return
	}

	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["username"] = user.Username
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	s.log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("login")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["username"] = ""
	session.Options.MaxAge = -1
	_ = session.Save(r, w)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// statusValue validates an optional status form value. Blank input is
// allowed (the store defaults it); unknown values are rejected at the
// boundary.
func statusValue(raw string) (string, bool) {
	if raw == "" || database.ValidStatus(raw) {
		return raw, true
	}
	return "", false
}
