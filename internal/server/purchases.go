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

// purchaseCategories is the fixed category list of the purchase form.
var purchaseCategories = []string{"Clothes", "Jewellery", "Travel", "Gifts", "Misc"}

func (s *Server) renderPurchases(w http.ResponseWriter, r *http.Request, user auth.User, conn *database.Conn, editing *database.Purchase) {
	purchases, err := conn.ListPurchases(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list purchases")
		s.serverError(w, r, user)
		return
	}
	s.render(w, "purchases", s.page(w, r, user, templates.PurchasesData{
		Purchases:  purchases,
		Categories: purchaseCategories,
		Editing:    editing,
		Statuses:   database.Statuses,
	}))
}

func (s *Server) handlePurchases(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		user, ok := s.guard(w, r, auth.ActionCreate, auth.ResourcePurchases)
		if !ok {
			return
		}
		s.createPurchase(w, r, user)
		return
	}

	user, ok := s.guard(w, r, auth.ActionView, auth.ResourcePurchases)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	s.renderPurchases(w, r, user, conn, nil)
}

// purchaseFromForm parses the purchase form. An amount that does not
// parse as a decimal is rejected outright, never coerced to zero.
func purchaseFromForm(r *http.Request) (database.Purchase, string) {
	p := database.Purchase{
		Category: strings.TrimSpace(r.FormValue("category")),
		Item:     strings.TrimSpace(r.FormValue("item")),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
	}
	if p.Category == "" || p.Item == "" {
		return p, "Category and item are required."
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("amount")))
	if err != nil {
		return p, "Amount must be a number."
	}
	p.Amount = amount
	status, ok := statusValue(r.FormValue("status"))
	if !ok {
		return p, "Unknown status value."
	}
	p.Status = status
	return p, ""
}

func (s *Server) createPurchase(w http.ResponseWriter, r *http.Request, user auth.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	p, errMsg := purchaseFromForm(r)
	if errMsg != "" {
		s.flash(w, r, errMsg)
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}
	p.CreatedBy = user.Name

	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	if _, err := conn.CreatePurchase(r.Context(), p); err != nil {
		s.log.Error().Err(err).Msg("failed to create purchase")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/purchases", http.StatusSeeOther)
}

func (s *Server) handlePurchaseEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionEdit, auth.ResourcePurchases)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "/purchases/edit/", "/purchases")
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
		p, errMsg := purchaseFromForm(r)
		if errMsg != "" {
			s.flash(w, r, errMsg)
			http.Redirect(w, r, "/purchases", http.StatusSeeOther)
			return
		}
		p.ID = id

		err := conn.UpdatePurchase(r.Context(), p)
		if errors.Is(err, database.ErrNotFound) {
			s.flash(w, r, "Purchase not found.")
			http.Redirect(w, r, "/purchases", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int64("id", id).Msg("failed to update purchase")
			s.serverError(w, r, user)
			return
		}
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}

	p, err := conn.GetPurchaseByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Purchase not found.")
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to load purchase")
		s.serverError(w, r, user)
		return
	}
	s.renderPurchases(w, r, user, conn, p)
}

func (s *Server) handlePurchaseDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionDelete, auth.ResourcePurchases)
	if !ok {
		return
	}
	id, ok := s.parseFormID(w, r, "/purchases")
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	err := conn.DeletePurchase(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.flash(w, r, "Purchase not found.")
	} else if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete purchase")
		s.serverError(w, r, user)
		return
	}
	http.Redirect(w, r, "/purchases", http.StatusSeeOther)
}
