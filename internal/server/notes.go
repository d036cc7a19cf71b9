package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderNotes(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Note) {
	notes, err := conn.ListNotes(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list notes")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "notes", s.page(w, r, user, templates.NotesData{
		Notes:   notes,
		Editing: editing,
	}))
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceNotes)
		if !ok {
			return
		}
		s.createNote(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceNotes)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderNotes(w, r, user, conn, nil)
}

func noteFromForm(r *http.Request) (database.Note, string) {
	n := database.Note{
		Category: strings.TrimSpace(r.FormValue("category")),
		Title:    strings.TrimSpace(r.FormValue("title")),
		Content:  strings.TrimSpace(r.FormValue("content")),
	}
	if n.Title == "" {
		return n, "Title is required."
	}
	return n, ""
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	n, errMsg := noteFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	n.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateNote(r.Context(), n); err != nil {
		s.log.Error().Err(err).Msg("failed to create note")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (s *Server) handleNoteEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceNotes)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/notes/edit/", "/notes")
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
		n, errMsg := noteFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/notes", http.StatusSeeOther)
			return
		}
		n.ID = id

		err := conn.UpdateNote(r.Context(), n)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Note not found.")
			http.Redirect(w, r, "/notes", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update note")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	n, err := conn.GetNoteByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Note not found.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load note")
		s.serverError(w, r, user)
		return
	}
	s.renderNotes(w, r, user, conn, n)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceNotes)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/notes")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteNote(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Note not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete note")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}
