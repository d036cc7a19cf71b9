package auth

import (
	"strings"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleBrideAdmin Role = "BRIDE_ADMIN"
	RoleGroomAdmin Role = "GROOM_ADMIN"
	RoleMember     Role = "MEMBER"
)

var roleLabels = map[Role]string{
	RoleSuperAdmin: "Super Admin",
	RoleBrideAdmin: "Bride Admin",
	RoleGroomAdmin: "Groom Admin",
	RoleMember:     "Member",
}

// Label returns the display name for the role.
func (r Role) Label() string {
	return roleLabels[r]
}

// IsAdmin reports whether the role may create and edit records.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleBrideAdmin || r == RoleGroomAdmin
}

// CanDelete reports whether the role may delete records. All three admin
// roles may delete.
func (r Role) CanDelete() bool {
	return r.IsAdmin()
}

type Action int

const (
	ActionView Action = iota
	ActionCreate
	ActionEdit
	ActionDelete
)

type Resource string

const (
	ResourceEvents      Resource = "events"
	ResourceGuests      Resource = "guests"
	ResourceTravel      Resource = "travel"
	ResourceVendors     Resource = "vendors"
	ResourceRooms       Resource = "rooms"
	ResourcePurchases   Resource = "purchases"
	ResourceCommercials Resource = "commercials"
	ResourceNotes       Resource = "notes"
	ResourceUploads     Resource = "uploads"
)

// Can decides whether a role may perform an action on a resource.
//
// Commercials are visible and writable only to the super admin. Purchases
// are hidden entirely from members, including reads. Everything else is
// readable by every role, writable by admins only.
func Can(role Role, action Action, resource Resource) bool {
	switch resource {
	case ResourceCommercials:
		return role == RoleSuperAdmin
	case ResourcePurchases:
		if !role.IsAdmin() {
			return false
		}
	}

	switch action {
	case ActionView:
		return true
	case ActionCreate, ActionEdit:
		return role.IsAdmin()
	case ActionDelete:
		return role.CanDelete()
	}
	return false
}

type User struct {
	Username string
	PIN      string
	Role     Role
	Name     string
}

// Directory is the static credential table. It is built once at startup and
// read-only afterwards.
type Directory struct {
	users map[string]User
}

// DefaultUsers is the credential table of the planning crew.
func DefaultUsers() []User {
	return []User{
		{Username: "vijay", PIN: "1234", Role: RoleSuperAdmin, Name: "Vijay"},
		{Username: "samdharsi", PIN: "1111", Role: RoleBrideAdmin, Name: "Samdharsi Kumar"},
		{Username: "tushar", PIN: "2222", Role: RoleGroomAdmin, Name: "Tushar Garg"},
		{Username: "member", PIN: "0000", Role: RoleMember, Name: "Family Member"},
	}
}

func NewDirectory(users []User) *Directory {
	d := &Directory{users: make(map[string]User, len(users))}
	for _, u := range users {
		d.users[strings.ToLower(u.Username)] = u
	}
	return d
}

// Authenticate matches a username (case-insensitive) and PIN against the
// table. The failure is generic: it never reveals whether the username
// existed.
func (d *Directory) Authenticate(username, pin string) (User, bool) {
	u, ok := d.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok || u.PIN != strings.TrimSpace(pin) {
		return User{}, false
	}
	return u, true
}

// Lookup resolves a session username back to a user.
func (d *Directory) Lookup(username string) (User, bool) {
	u, ok := d.users[strings.ToLower(username)]
	return u, ok
}
