package server

import (
	"fmt"
	"net/http"
	"strings"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/database"
)

// escapeCSVField escapes a string for CSV format.
func escapeCSVField(field string) string {
	escaped := strings.ReplaceAll(field, "\"", "\"\"")
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return escaped
}

func buildGuestCSVRow(g *database.Guest) string {
	visited := "No"
	if g.Visited {
		visited = "Yes"
	}
	stay := "No"
	if g.StayRequired {
		stay = "Yes"
	}
	return fmt.Sprintf("\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\"\n",
		escapeCSVField(g.Name), escapeCSVField(g.Side), escapeCSVField(g.Relation),
		escapeCSVField(g.Phone), visited, stay, escapeCSVField(g.RoomNo))
}

// handleGuestsCSV exports the guest list.
func (s *Server) handleGuestsCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := s.guard(w, r, auth.ActionView, auth.ResourceGuests)
	if !ok {
		return
	}
	conn, ok := s.acquire(w, r, user)
	if !ok {
		return
	}
	defer conn.Close()

	guests, err := conn.ListGuests(r.Context())
	if err != nil {
		http.Error(w, "Failed to load guests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=guest-list.csv")

	// UTF-8 BOM for Excel compatibility
	w.Write([]byte{0xEF, 0xBB, 0xBF})
	w.Write([]byte("Name,Side,Relation,Phone,Visited,Stay,Room\n"))

	for _, g := range guests {
		w.Write([]byte(buildGuestCSVRow(g)))
	}
}
