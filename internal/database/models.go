package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status values for the status columns. No transitions are enforced: any
// role permitted to edit may set any value.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Statuses lists the valid status values in form order.
var Statuses = []string{StatusPending, StatusInProgress, StatusDone}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// Guest sides.
const (
	SideBride = "Bride"
	SideGroom = "Groom"
)

func ValidSide(s string) bool {
	return s == SideBride || s == SideGroom
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

type Event struct {
	ID         int64
	Title      string
	Date       string
	Time       string
	Notes      string
	AssignedTo string
	Status     string
	CreatedBy  string
	UpdatedAt  time.Time
}

type Guest struct {
	ID           int64
	Side         string
	Name         string
	Relation     string
	Phone        string
	Visited      bool
	StayRequired bool
	RoomNo       string
	Notes        string
	CreatedBy    string
	UpdatedAt    time.Time
}

type Travel struct {
	ID             int64
	GuestID        int64
	GuestName      string // resolved from guests on list/get; blank when the link dangles
	ArrivalDate    string
	ArrivalTime    string
	Mode           string
	RefNo          string
	PickupRequired bool
	PickupPerson   string
	Vehicle        string
	CheckinDate    string
	CheckoutDate   string
	Status         string
	AssignedTo     string
	Notes          string
	CreatedBy      string
	UpdatedAt      time.Time
}

type Vendor struct {
	ID            int64
	Category      string
	VendorName    string
	ContactPerson string
	Phone         string
	Status        string
	AssignedTo    string
	Notes         string
	CreatedBy     string
	UpdatedAt     time.Time
}

type Room struct {
	ID         int64
	RoomNo     string
	GuestName  string
	Checkin    string
	Checkout   string
	Status     string
	AssignedTo string
	Notes      string
	CreatedBy  string
	UpdatedAt  time.Time
}

type Purchase struct {
	ID        int64
	Category  string
	Item      string
	Amount    decimal.Decimal
	Status    string
	Notes     string
	CreatedBy string
	UpdatedAt time.Time
}

type Commercial struct {
	ID        int64
	Category  string
	Amount    decimal.Decimal
	Notes     string
	CreatedBy string
	UpdatedAt time.Time
}

type Note struct {
	ID        int64
	Category  string
	Title     string
	Content   string
	CreatedBy string
	UpdatedAt time.Time
}

type Upload struct {
	ID           int64
	Category     string
	Title        string
	ExternalLink string
	UploadedBy   string
	UpdatedAt    time.Time
}
