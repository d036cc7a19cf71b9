package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderEvents(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Event) {
	events, err := conn.ListEvents(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "events", s.page(w, r, user, templates.EventsData{
		Events:   events,
		Editing:  editing,
		Statuses: database.Statuses,
	}))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceEvents)
		if !ok {
			return
		}
		s.createEvent(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceEvents)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderEvents(w, r, user, conn, nil)
}

func eventFromForm(r *http.Request) (database.Event, string) {
	e := database.Event{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Date:       strings.TrimSpace(r.FormValue("date")),
		Time:       strings.TrimSpace(r.FormValue("time")),
		Notes:      strings.TrimSpace(r.FormValue("notes")),
		AssignedTo: strings.TrimSpace(r.FormValue("assigned_to")),
	}
	if e.Title == "" || e.Date == "" || e.Time == "" {
		return e, "Title, date and time are required."
	}
	status, ok := statusValue(r.FormValue("status"))
	if !ok {
		return e, "Unknown status value."
	}
	e.Status = status
	return e, ""
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	e, errMsg := eventFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	e.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateEvent(r.Context(), e); err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (s *Server) handleEventEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceEvents)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/events/edit/", "/events")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		e, errMsg := eventFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/events", http.StatusSeeOther)
			return
		}
		e.ID = id

		err := conn.UpdateEvent(r.Context(), e)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Event not found.")
			http.Redirect(w, r, "/events", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update event")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}

	e, err := conn.GetEventByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Event not found.")
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load event")
		s.serverError(w, r, user)
		return
	}
	s.renderEvents(w, r, user, conn, e)
}

func (s *Server) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceEvents)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/events")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteEvent(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Event not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete event")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
