package server

import (
	"errors"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderUploads(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Upload) {
	uploads, err := conn.ListUploads(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list uploads")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "uploads", s.page(w, r, user, templates.UploadsData{
		Uploads: uploads,
		Editing: editing,
	}))
}

func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceUploads)
		if !ok {
			return
		}
		s.createUpload(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceUploads)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderUploads(w, r, user, conn, nil)
}

// uploadFromForm parses the upload form. Files are never stored: the
// record carries an external link to where the document already lives.
func uploadFromForm(r *http.Request) (database.Upload, string) {
	u := database.Upload{
		Category:     strings.TrimSpace(r.FormValue("category")),
		Title:        strings.TrimSpace(r.FormValue("title")),
		ExternalLink: strings.TrimSpace(r.FormValue("external_link")),
	}
	if u.Title == "" || u.ExternalLink == "" {
		return u, "Title and link are required."
	}
	return u, ""
}

func (s *Server) createUpload(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	u, errMsg := uploadFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/uploads", http.StatusSeeOther)
		return
	}
	u.UploadedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateUpload(r.Context(), u); err != nil {
		s.log.Error().Err(err).Msg("failed to create upload")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/uploads", http.StatusSeeOther)
}

func (s *Server) handleUploadEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceUploads)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/uploads/edit/", "/uploads")
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
		u, errMsg := uploadFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/uploads", http.StatusSeeOther)
			return
		}
		u.ID = id

		err := conn.UpdateUpload(r.Context(), u)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Upload not found.")
			http.Redirect(w, r, "/uploads", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update upload")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/uploads", http.StatusSeeOther)
		return
	}

	u, err := conn.GetUploadByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Upload not found.")
		http.Redirect(w, r, "/uploads", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load upload")
		s.serverError(w, r, user)
		return
	}
	s.renderUploads(w, r, user, conn, u)
}

func (s *Server) handleUploadDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceUploads)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/uploads")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteUpload(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Upload not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete upload")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/uploads", http.StatusSeeOther)
}
