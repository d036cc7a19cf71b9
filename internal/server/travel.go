package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderTravel(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Travel) {
	records, err := conn.ListTravel(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list travel records")
		s.serverError(w, r, user)
		return
	}
	guests, err := conn.ListGuests(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list guests")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "travel", s.page(w, r, user, templates.TravelData{
		Records:  records,
		Guests:   guests,
		Editing:  editing,
		Statuses: database.Statuses,
	}))
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceTravel)
		if !ok {
			return
		}
		s.createTravel(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceTravel)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderTravel(w, r, user, conn, nil)
}

func travelFromForm(r *http.Request) (database.Travel, string) {
	guestID, err := parseID(r.FormValue("guest_id"))
	if err != nil {
		return database.Travel{}, "A guest must be selected."
	}
	t := database.Travel{
		GuestID:        guestID,
		ArrivalDate:    strings.TrimSpace(r.FormValue("arrival_date")),
		ArrivalTime:    strings.TrimSpace(r.FormValue("arrival_time")),
		Mode:           strings.TrimSpace(r.FormValue("mode")),
		RefNo:          strings.TrimSpace(r.FormValue("ref_no")),
		PickupRequired: r.FormValue("pickup_required") == "yes",
		PickupPerson:   strings.TrimSpace(r.FormValue("pickup_person")),
		Vehicle:        strings.TrimSpace(r.FormValue("vehicle")),
		CheckinDate:    strings.TrimSpace(r.FormValue("checkin_date")),
		CheckoutDate:   strings.TrimSpace(r.FormValue("checkout_date")),
		AssignedTo:     strings.TrimSpace(r.FormValue("assigned_to")),
		Notes:          strings.TrimSpace(r.FormValue("notes")),
	}
	status, ok := statusValue(r.FormValue("status"))
	if !ok {
		return t, "Unknown status value."
	}
	t.Status = status
	return t, ""
}

func (s *Server) createTravel(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	t, errMsg := travelFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/travel", http.StatusSeeOther)
		return
	}
	t.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateTravel(r.Context(), t); err != nil {
		s.log.Error().Err(err).Msg("failed to create travel record")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/travel", http.StatusSeeOther)
}

func (s *Server) handleTravelEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceTravel)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/travel/edit/", "/travel")
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
		t, errMsg := travelFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/travel", http.StatusSeeOther)
			return
		}
		t.ID = id

		err := conn.UpdateTravel(r.Context(), t)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Travel record not found.")
			http.Redirect(w, r, "/travel", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update travel record")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/travel", http.StatusSeeOther)
		return
	}

	t, err := conn.GetTravelByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Travel record not found.")
		http.Redirect(w, r, "/travel", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load travel record")
		s.serverError(w, r, user)
		return
	}
	s.renderTravel(w, r, user, conn, t)
}

func (s *Server) handleTravelDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceTravel)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/travel")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteTravel(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Travel record not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete travel record")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/travel", http.StatusSeeOther)
}
