package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/config"
	"wedding-planner/internal/database"
	"wedding-planner/internal/monitoring"
	"wedding-planner/templates"
)

const sessionName = "wedding-session"

type Server struct {
	config       *config.Config
	store        *database.Store
	users        *auth.Directory
	sessionStore *sessions.CookieStore
	router       *http.ServeMux
	log          zerolog.Logger
}

func New(cfg *config.Config, store *database.Store, users *auth.Directory, log zerolog.Logger) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	// gorilla/sessions v1.4 defaults to Secure + SameSite=None, which no
	// client accepts over plain HTTP. The app serves HTTP behind whatever
	// TLS termination the deployment provides, so the cookie itself must
	// work without TLS.
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		config:       cfg,
		store:        store,
		users:        users,
		sessionStore: sessionStore,
		router:       http.NewServeMux(),
		log:          log.With().Str("component", "server").Logger(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	route := func(pattern string, h http.HandlerFunc) {
		s.router.Handle(pattern, monitoring.Instrument(pattern, h))
	}

	route("/", s.handleHome)
	route("/login", s.handleLogin)
	route("/logout", s.handleLogout)

	route("/events", s.handleEvents)
	route("/events/edit/", s.handleEventEdit)
	route("/events/delete", s.handleEventDelete)

	route("/guests", s.handleGuests)
	route("/guests/edit/", s.handleGuestEdit)
	route("/guests/delete", s.handleGuestDelete)
	route("/guests/toggle-visit", s.handleGuestToggleVisit)
	route("/guests/download-csv", s.handleGuestsCSV)

	route("/travel", s.handleTravel)
	route("/travel/edit/", s.handleTravelEdit)
	route("/travel/delete", s.handleTravelDelete)

	route("/vendors", s.handleVendors)
	route("/vendors/edit/", s.handleVendorEdit)
	route("/vendors/delete", s.handleVendorDelete)

	route("/rooms", s.handleRooms)
	route("/rooms/edit/", s.handleRoomEdit)
	route("/rooms/delete", s.handleRoomDelete)

	route("/purchases", s.handlePurchases)
	route("/purchases/edit/", s.handlePurchaseEdit)
	route("/purchases/delete", s.handlePurchaseDelete)

	route("/commercials", s.handleCommercials)
	route("/commercials/edit/", s.handleCommercialEdit)
	route("/commercials/delete", s.handleCommercialDelete)

	route("/notes", s.handleNotes)
	route("/notes/edit/", s.handleNoteEdit)
	route("/notes/delete", s.handleNoteDelete)

	route("/uploads", s.handleUploads)
	route("/uploads/edit/", s.handleUploadEdit)
	route("/uploads/delete", s.handleUploadDelete)

	s.router.Handle("/metrics", monitoring.Handler())
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withAccessLog(s.router)
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// currentUser resolves the session identity back to a user.
func (s *Server) currentUser(r *http.Request) (auth.User, bool) {
	session, _ := s.sessionStore.Get(r, sessionName)
	username, _ := session.Values["username"].(string)
	if username == "" {
		return auth.User{}, false
	}
	return s.users.Lookup(username)
}

// guard resolves the session and checks the permission matrix. An
// unauthenticated caller is redirected to login; an authenticated caller
// without permission gets the Forbidden page. The boolean reports whether
// the handler may proceed.
func (s *Server) guard(w http.ResponseWriter, r *http.Request, action auth.Action, resource auth.Resource) (auth.User, bool) {
	user, ok := s.currentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return auth.User{}, false
	}
	if !auth.Can(user.Role, action, resource) {
		s.forbidden(w, r, user)
		return auth.User{}, false
	}
	return user, true
}

// acquire pins a store connection for this request. The caller must defer
// Close on the returned connection.
func (s *Server) acquire(w http.ResponseWriter, r *http.Request, user auth.User) (*database.Conn, bool) {
	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to acquire store connection")
		s.serverError(w, r, user)
		return nil, false
	}
	return conn, true
}

// flash queues a message shown on the next page render.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		s.log.Warn().Err(err).Msg("failed to save flash")
	}
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.sessionStore.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear flashes")
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// page assembles the common template envelope for a logged-in user.
func (s *Server) page(w http.ResponseWriter, r *http.Request, user auth.User, data any) templates.Page {
	return templates.Page{
		Title:           s.config.AppTitle,
		LoggedIn:        true,
		UserName:        user.Name,
		RoleLabel:       user.Role.Label(),
		CanWrite:        user.Role.IsAdmin(),
		CanDelete:       user.Role.CanDelete(),
		ShowPurchases:   auth.Can(user.Role, auth.ActionView, auth.ResourcePurchases),
		ShowCommercials: auth.Can(user.Role, auth.ActionView, auth.ResourceCommercials),
		Flashes:         s.popFlashes(w, r),
		Data:            data,
	}
}

func (s *Server) render(w http.ResponseWriter, name string, page templates.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, name, page); err != nil {
		s.log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) renderStatus(w http.ResponseWriter, status int, name string, page templates.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Render(w, name, page); err != nil {
		s.log.Error().Err(err).Str("page", name).Msg("render failed")
	}
}

func (s *Server) forbidden(w http.ResponseWriter, r *http.Request, user auth.User) {
	s.renderStatus(w, http.StatusForbidden, "forbidden", s.page(w, r, user, nil))
}

func (s *Server) notFoundPage(w http.ResponseWriter, r *http.Request, user auth.User) {
	s.renderStatus(w, http.StatusNotFound, "notfound", s.page(w, r, user, nil))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, user auth.User) {
	s.renderStatus(w, http.StatusInternalServerError, "servererror", s.page(w, r, user, nil))
}

// parseID parses an id string and returns an error if invalid.
func parseID(idStr string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(idStr, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid ID format: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid ID: must be positive")
	}
	return id, nil
}

// parseFormID parses and validates an id from a POST form. On failure it
// redirects back to the given list page and returns false.
func (s *Server) parseFormID(w http.ResponseWriter, r *http.Request, backTo string) (int64, bool) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return 0, false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return 0, false
	}
	id, err := parseID(r.FormValue("id"))
	if err != nil {
		s.flash(w, r, "Invalid record id.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return 0, false
	}
	return id, true
}

// pathID extracts the trailing id from an edit URL like /events/edit/7.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, prefix, backTo string) (int64, bool) {
	id, err := parseID(r.URL.Path[len(prefix):])
	if err != nil {
		s.flash(w, r, "Invalid record id.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return 0, false
	}
	return id, true
}
