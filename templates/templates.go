// Package templates renders the full-page HTML views. Everything is
// embedded so the binary is self-contained.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"wedding-planner/internal/database"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "₹ " + d.StringFixed(2)
	},
	"when": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}

var pages = template.Must(template.New("pages").Funcs(funcs).ParseFS(files, "*.html"))

// Page is the envelope every view receives. Data carries the
// page-specific payload.
type Page struct {
	Title           string
	LoggedIn        bool
	UserName        string
	RoleLabel       string
	CanWrite        bool
	CanDelete       bool
	ShowPurchases   bool
	ShowCommercials bool
	Flashes         []string
	Data            any
}

// Render executes the named page template into w.
func Render(w io.Writer, page string, data Page) error {
	if err := pages.ExecuteTemplate(w, page, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	return nil
}

type LoginData struct {
	Error string
}

type HomeData struct {
	Events []*database.Event
}

type EventsData struct {
	Events   []*database.Event
	Editing  *database.Event
	Statuses []string
}

type GuestsData struct {
	Bride   []*database.Guest
	Groom   []*database.Guest
	Editing *database.Guest
}

type TravelData struct {
	Records  []*database.Travel
	Guests   []*database.Guest
	Editing  *database.Travel
	Statuses []string
}

type VendorsData struct {
	Vendors    []*database.Vendor
	Categories []string
	Editing    *database.Vendor
	Statuses   []string
}

type RoomsData struct {
	Rooms    []*database.Room
	Editing  *database.Room
	Statuses []string
}

type PurchasesData struct {
	Purchases  []*database.Purchase
	Categories []string
	Editing    *database.Purchase
	Statuses   []string
}

type CommercialsData struct {
	Commercials []*database.Commercial
	Total       decimal.Decimal
	Editing     *database.Commercial
}

type NotesData struct {
	Notes   []*database.Note
	Editing *database.Note
}

type UploadsData struct {
	Uploads []*database.Upload
	Editing *database.Upload
}
