package authz

import (
	"testing"

	"ecommerce-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func contextWith(userID uuid.UUID, perms ...string) UserContext {
	set := make(PermissionSet)
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return UserContext{User: models.User{ID: userID}, Permissions: set}
}

func TestCanViewOrderOwnOnly(t *testing.T) {
	me := uuid.New()
	other := uuid.New()
	u := contextWith(me, PermOrdersViewOwn)

	assert.True(t, CanViewOrder(u, models.Order{UserID: me}))
	assert.False(t, CanViewOrder(u, models.Order{UserID: other}))
}

func TestCanViewOrderAny(t *testing.T) {
	u := contextWith(uuid.New(), PermOrdersViewAny)
	assert.True(t, CanViewOrder(u, models.Order{UserID: uuid.New()}))
}

func TestCanViewOrderAssigned(t *testing.T) {
	courier := uuid.New()
	otherCourier := uuid.New()
	u := contextWith(courier, PermOrdersViewAssigned)

	assert.True(t, CanViewOrder(u, models.Order{UserID: uuid.New(), DeliveryManID: &courier}))
	assert.False(t, CanViewOrder(u, models.Order{UserID: uuid.New(), DeliveryManID: &otherCourier}))
	assert.False(t, CanViewOrder(u, models.Order{UserID: uuid.New()}),
		"unassigned orders are invisible to couriers")
}

func TestCanUpdateOrderStatusRequiresUpdateAny(t *testing.T) {
	owner := uuid.New()
	order := models.Order{UserID: owner}

	assert.False(t, CanUpdateOrderStatus(contextWith(owner, PermOrdersUpdateOwn), order),
		"owning an order does not grant status changes")
	assert.True(t, CanUpdateOrderStatus(contextWith(uuid.New(), PermOrdersUpdateAny), order))
}

func TestPermissionSetUnionsRoles(t *testing.T) {
	roles := []models.Role{
		{Name: "a", Permissions: []models.Permission{{Name: PermOrdersViewOwn}}},
		{Name: "b", Permissions: []models.Permission{{Name: PermOrdersViewAssigned}, {Name: PermOrdersViewOwn}}},
	}
	set := NewPermissionSet(roles)

	assert.True(t, set.Can(PermOrdersViewOwn))
	assert.True(t, set.Can(PermOrdersViewAssigned))
	assert.False(t, set.Can(PermOrdersViewAny))
}

func TestCanViewUserOwnProfile(t *testing.T) {
	me := uuid.New()
	u := contextWith(me, PermUsersViewOwn)

	assert.True(t, CanViewUser(u, models.User{ID: me}))
	assert.False(t, CanViewUser(u, models.User{ID: uuid.New()}))
}

func TestLocationPoliciesScopeToOwner(t *testing.T) {
	me := uuid.New()
	u := contextWith(me, PermUsersViewOwn, PermUsersUpdateOwn)

	mine := models.UserLocation{UserID: me}
	theirs := models.UserLocation{UserID: uuid.New()}

	assert.True(t, CanViewLocation(u, mine))
	assert.False(t, CanViewLocation(u, theirs))
	assert.True(t, CanUpdateLocation(u, mine))
	assert.False(t, CanDeleteLocation(u, theirs))
}
