package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleSuperAdmin, true},
		{RoleBrideAdmin, true},
		{RoleGroomAdmin, true},
		{RoleMember, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.IsAdmin(), "IsAdmin(%s)", tt.role)
		assert.Equal(t, tt.want, tt.role.CanDelete(), "CanDelete(%s)", tt.role)
	}
}

func TestCommercialsSuperAdminOnly(t *testing.T) {
	actions := []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

	for _, action := range actions {
		assert.True(t, Can(RoleSuperAdmin, action, ResourceCommercials))
		assert.False(t, Can(RoleBrideAdmin, action, ResourceCommercials))
		assert.False(t, Can(RoleGroomAdmin, action, ResourceCommercials))
		assert.False(t, Can(RoleMember, action, ResourceCommercials))
	}
}

func TestPurchasesHiddenFromMember(t *testing.T) {
	actions := []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

	for _, action := range actions {
		assert.False(t, Can(RoleMember, action, ResourcePurchases))
	}
	for _, role := range []Role{RoleSuperAdmin, RoleBrideAdmin, RoleGroomAdmin} {
		for _, action := range actions {
			assert.True(t, Can(role, action, ResourcePurchases), "%s %d", role, action)
		}
	}
}

func TestMemberReadOnlyEverywhereElse(t *testing.T) {
	resources := []Resource{
		ResourceEvents, ResourceGuests, ResourceTravel, ResourceVendors,
		ResourceRooms, ResourceNotes, ResourceUploads,
	}

	for _, res := range resources {
		assert.True(t, Can(RoleMember, ActionView, res), "member view %s", res)
		assert.False(t, Can(RoleMember, ActionCreate, res), "member create %s", res)
		assert.False(t, Can(RoleMember, ActionEdit, res), "member edit %s", res)
		assert.False(t, Can(RoleMember, ActionDelete, res), "member delete %s", res)
	}
}

func TestAdminsWriteEverywhereElse(t *testing.T) {
	resources := []Resource{
		ResourceEvents, ResourceGuests, ResourceTravel, ResourceVendors,
		ResourceRooms, ResourceNotes, ResourceUploads,
	}

	for _, role := range []Role{RoleSuperAdmin, RoleBrideAdmin, RoleGroomAdmin} {
		for _, res := range resources {
			assert.True(t, Can(role, ActionCreate, res), "%s create %s", role, res)
			assert.True(t, Can(role, ActionEdit, res), "%s edit %s", role, res)
			assert.True(t, Can(role, ActionDelete, res), "%s delete %s", role, res)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	dir := NewDirectory(DefaultUsers())

	u, ok := dir.Authenticate("vijay", "1234")
	require.True(t, ok)
	assert.Equal(t, RoleSuperAdmin, u.Role)
	assert.Equal(t, "Vijay", u.Name)

	// Username matching is case-insensitive.
	u, ok = dir.Authenticate("VIJAY", "1234")
	require.True(t, ok)
	assert.Equal(t, "vijay", u.Username)

	// Surrounding whitespace is tolerated, as the login form trims it.
	_, ok = dir.Authenticate("  member  ", " 0000 ")
	assert.True(t, ok)

	// Unknown user and wrong PIN fail identically.
	_, badUser := dir.Authenticate("nobody", "1234")
	_, badPIN := dir.Authenticate("vijay", "9999")
	assert.False(t, badUser)
	assert.False(t, badPIN)
}

func TestRoleLabels(t *testing.T) {
	assert.Equal(t, "Super Admin", RoleSuperAdmin.Label())
	assert.Equal(t, "Bride Admin", RoleBrideAdmin.Label())
	assert.Equal(t, "Groom Admin", RoleGroomAdmin.Label())
	assert.Equal(t, "Member", RoleMember.Label())
}
