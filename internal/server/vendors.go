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

func (s *Server) renderVendors(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Vendor) {
	vendors, err := conn.ListVendors(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list vendors")
		s.serverError(w, r, user)
		return
	}
	categories, err := conn.ListVendorCategories(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list vendor categories")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "vendors", s.page(w, r, user, templates.VendorsData{
		Vendors:    vendors,
		Categories: categories,
		Editing:    editing,
		Statuses:   database.Statuses,
	}))
}

func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourceVendors)
		if !ok {
			return
		}
		s.createVendor(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceVendors)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderVendors(w, r, user, conn, nil)
}

func vendorFromForm(r *http.Request) (database.Vendor, string) {
	v := database.Vendor{
		Category:      strings.TrimSpace(r.FormValue("category")),
		VendorName:    strings.TrimSpace(r.FormValue("vendor_name")),
		ContactPerson: strings.TrimSpace(r.FormValue("contact_person")),
		Phone:         utils.CleanPhoneNumber(r.FormValue("phone")),
		AssignedTo:    strings.TrimSpace(r.FormValue("assigned_to")),
		Notes:         strings.TrimSpace(r.FormValue("notes")),
	}
	if v.Category == "" || v.VendorName == "" {
		return v, "Category and vendor name are required."
	}
	status, ok := statusValue(r.FormValue("status"))
	if !ok {
		return v, "Unknown status value."
	}
	v.Status = status
	return v, ""
}

func (s *Server) createVendor(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	v, errMsg := vendorFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/vendors", http.StatusSeeOther)
		return
	}
	v.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreateVendor(r.Context(), v); err != nil {
		s.log.Error().Err(err).Msg("failed to create vendor")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/vendors", http.StatusSeeOther)
}

func (s *Server) handleVendorEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourceVendors)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/vendors/edit/", "/vendors")
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
		v, errMsg := vendorFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/vendors", http.StatusSeeOther)
			return
		}
		v.ID = id

		err := conn.UpdateVendor(r.Context(), v)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Vendor not found.")
			http.Redirect(w, r, "/vendors", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update vendor")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/vendors", http.StatusSeeOther)
		return
	}

	v, err := conn.GetVendorByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Vendor not found.")
		http.Redirect(w, r, "/vendors", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load vendor")
		s.serverError(w, r, user)
		return
	}
	s.renderVendors(w, r, user, conn, v)
}

func (s *Server) handleVendorDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourceVendors)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/vendors")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeleteVendor(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Vendor not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete vendor")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/vendors", http.StatusSeeOther)
}
