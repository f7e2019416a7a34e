package users

import (
	"testing"

	"venuehub/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRoles(t *testing.T) {
	assert.True(t, allowedRoles[models.RoleCustomer])
	assert.True(t, allowedRoles[models.RoleVendor])
	assert.False(t, allowedRoles[models.RoleAdmin])
	assert.False(t, allowedRoles["superuser"])
}

func TestUserCompleteness(t *testing.T) {
	fresh := models.User{UserID: "u1"}
	assert.False(t, fresh.Complete())

	fresh.Role = []string{models.RoleCustomer}
	assert.True(t, fresh.Complete())
}

func TestUserPatchFields(t *testing.T) {
	name := "Sam"
	phone := "+1-555-0100"
	patch := models.UserPatch{Name: &name, PhoneNumber: &phone}

	set := patch.Fields()
	assert.Equal(t, "Sam", set["name"])
	assert.Equal(t, "+1-555-0100", set["phone_number"])
	assert.NotContains(t, set, "address")
	assert.NotContains(t, set, "avatar")
}
