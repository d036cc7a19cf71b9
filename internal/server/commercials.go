package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
	"wedding-planner/templates"
)

func (s *Server) renderCommercials(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Commercial) {
	commercials, err := conn.ListCommercials(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list commercials")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "commercials", s.page(w, r, user, templates.CommercialsData{
		Commercials: commercials,
		Total:       database.TotalCommercials(commercials),
		Editing:     editing,
	}))
}

func (s *Server) handleCommercials(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceCommercials)
		if !ok {
			return
		}
		s.createCommercial(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceCommercials)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderCommercials(w, r, user, conn, nil)
}

func commercialFromForm(r *http.Request) (database.Commercial, string) {
	c := database.Commercial{
		Category: strings.TrimSpace(r.FormValue("category")),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
	}
	if c.Category == "" {
		return c, "Category is required."
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("amount")))
	if err != nil {
		return c, "Amount must be a number."
	}
	c.Amount = amount
	return c, ""
}

func (s *Server) createCommercial(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	c, errMsg := commercialFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/commercials", http.StatusSeeOther)
		return
	}
	c.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateCommercial(r.Context(), c); err != nil {
		s.log.Error().Err(err).Msg("failed to create commercial")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/commercials", http.StatusSeeOther)
}

func (s *Server) handleCommercialEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceCommercials)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/commercials/edit/", "/commercials")
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
		c, errMsg := commercialFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/commercials", http.StatusSeeOther)
			return
		}
		c.ID = id

		err := conn.UpdateCommercial(r.Context(), c)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Commercial entry not found.")
			http.Redirect(w, r, "/commercials", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update commercial")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/commercials", http.StatusSeeOther)
		return
	}

	c, err := conn.GetCommercialByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Commercial entry not found.")
		http.Redirect(w, r, "/commercials", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load commercial")
		s.serverError(w, r, user)
		return
	}
	s.renderCommercials(w, r, user, conn, c)
}

func (s *Server) handleCommercialDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceCommercials)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/commercials")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteCommercial(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Commercial entry not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete commercial")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/commercials", http.StatusSeeOther)
}
