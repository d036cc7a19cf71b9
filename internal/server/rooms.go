package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderRooms(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Room) {
	rooms, err := conn.ListRooms(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list rooms")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "rooms", s.page(w, r, user, templates.RoomsData{
		Rooms:    rooms,
		Editing:  editing,
		Statuses: database.Statuses,
	}))
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceRooms)
		if !ok {
			return
		}
		s.createRoom(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceRooms)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderRooms(w, r, user, conn, nil)
}

func roomFromForm(r *http.Request) (database.Room, string) {
	room := database.Room{
		RoomNo:     strings.TrimSpace(r.FormValue("room_no")),
		GuestName:  strings.TrimSpace(r.FormValue("guest_name")),
		Checkin:    strings.TrimSpace(r.FormValue("checkin")),
		Checkout:   strings.TrimSpace(r.FormValue("checkout")),
		AssignedTo: strings.TrimSpace(r.FormValue("assigned_to")),
		Notes:      strings.TrimSpace(r.FormValue("notes")),
	}
	if room.RoomNo == "" {
		return room, "Room number is required."
	}
	status, ok := statusValue(r.FormValue("status"))
	if !ok {
		return room, "Unknown status value."
	}
	room.Status = status
	return room, ""
}

func (s *Server) createRoom(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	room, errMsg := roomFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/rooms", http.StatusSeeOther)
		return
	}
	room.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateRoom(r.Context(), room); err != nil {
		s.log.Error().Err(err).Msg("failed to create room")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

func (s *Server) handleRoomEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceRooms)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/rooms/edit/", "/rooms")
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
		room, errMsg := roomFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/rooms", http.StatusSeeOther)
			return
		}
		room.ID = id

		err := conn.UpdateRoom(r.Context(), room)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Room not found.")
			http.Redirect(w, r, "/rooms", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update room")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/rooms", http.StatusSeeOther)
		return
	}

	room, err := conn.GetRoomByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Room not found.")
		http.Redirect(w, r, "/rooms", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load room")
		s.serverError(w, r, user)
		return
	}
	s.renderRooms(w, r, user, conn, room)
}

func (s *Server) handleRoomDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceRooms)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/rooms")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteRoom(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Room not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete room")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}
