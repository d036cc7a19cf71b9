package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/internal/utils"
	"wedding-planner/templates"
)

func (s *Server) renderGuests(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Guest) {
	guests, err := conn.ListGuests(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list guests")
		s.serverError(w, r, user)
		return
	}

	data := templates.GuestsData{Editing: editing}
	for _, g := range guests {
		if g.Side == database.SideBride {
			data.Bride = append(data.Bride, g)
		} else {
			data.Groom = append(data.Groom, g)
		}
	}
	s.render(w, "guests", s.page(w, r, user, data))
}

func (s *Server) handleGuests(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceGuests)
		if !ok {
			return
		}
		s.createGuest(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceGuests)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderGuests(w, r, user, conn, nil)
}

func guestFromForm(r *http.Request) (database.Guest, string) {
	g := database.Guest{
		Side:         strings.TrimSpace(r.FormValue("side")),
		Name:         strings.TrimSpace(r.FormValue("name")),
		Relation:     strings.TrimSpace(r.FormValue("relation")),
		Phone:        utils.CleanPhoneNumber(r.FormValue("phone")),
		StayRequired: r.FormValue("stay_required") == "yes",
		RoomNo:       strings.TrimSpace(r.FormValue("room_no")),
		Notes:        strings.TrimSpace(r.FormValue("notes")),
	}
	if g.Name == "" {
		return g, "Guest name is required."
	}
	if g.Side == "" {
		g.Side = database.SideBride
	}
	if !database.ValidSide(g.Side) {
		return g, "Side must be Bride or Groom."
	}
	return g, ""
}

func (s *Server) createGuest(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	g, errMsg := guestFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/guests", http.StatusSeeOther)
		return
	}
	g.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateGuest(r.Context(), g); err != nil {
		s.log.Error().Err(err).Msg("failed to create guest")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/guests", http.StatusSeeOther)
}

func (s *Server) handleGuestEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceGuests)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/guests/edit/", "/guests")
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
		g, errMsg := guestFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/guests", http.StatusSeeOther)
			return
		}
		g.ID = id

		// The visited flag is owned by the toggle action, so carry the
		// stored value through the edit.
		current, err := conn.GetGuestByID(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Guest not found.")
			http.Redirect(w, r, "/guests", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to load guest")
			s.serverError(w, r, user)
			return
		}
		g.Visited = current.Visited

		if err := conn.UpdateGuest(r.Context(), g); err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update guest")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/guests", http.StatusSeeOther)
		return
	}

	g, err := conn.GetGuestByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Guest not found.")
		http.Redirect(w, r, "/guests", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load guest")
		s.serverError(w, r, user)
		return
	}
	s.renderGuests(w, r, user, conn, g)
}

func (s *Server) handleGuestToggleVisit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceGuests)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/guests")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.ToggleGuestVisited(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Guest not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to toggle guest visit")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/guests", http.StatusSeeOther)
}

func (s *Server) handleGuestDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceGuests)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/guests")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteGuest(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Guest not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/guests", http.StatusSeeOther)
}
