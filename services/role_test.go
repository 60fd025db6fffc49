package services

import (
	"net/http"
	"testing"

	"ecommerce-api/authz"
	"ecommerce-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPermissions(t *testing.T, svc *RoleService, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, svc.db.Create(&models.Permission{Name: name}).Error)
	}
}

func TestRoleCreateAttachesPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	seedPermissions(t, svc, authz.PermOrdersViewOwn, authz.PermOrdersCreate)

	role, rerr := svc.Create(RoleInput{
		Name:        "shopper",
		Description: "Places orders",
		Permissions: []string{authz.PermOrdersViewOwn, authz.PermOrdersCreate},
	})
	require.Nil(t, rerr)
	assert.Len(t, role.Permissions, 2)

	set := authz.NewPermissionSet([]models.Role{*role})
	assert.True(t, set.Can(authz.PermOrdersViewOwn))
	assert.True(t, set.Can(authz.PermOrdersCreate))
}

func TestRoleCreateRejectsUnknownPermission(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	seedPermissions(t, svc, authz.PermOrdersViewOwn)

	_, rerr := svc.Create(RoleInput{
		Name:        "shopper",
		Permissions: []string{authz.PermOrdersViewOwn, "orders:teleport"},
	})
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Message, "orders:teleport")
}

func TestRoleCreateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	_, rerr := svc.Create(RoleInput{Name: "shopper"})
	require.Nil(t, rerr)

	_, rerr = svc.Create(RoleInput{Name: "shopper"})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
}

func TestRoleUpdateReplacesPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	seedPermissions(t, svc, authz.PermOrdersViewOwn, authz.PermOrdersViewAny)

	role, rerr := svc.Create(RoleInput{
		Name:        "shopper",
		Permissions: []string{authz.PermOrdersViewOwn},
	})
	require.Nil(t, rerr)

	updated, rerr := svc.Update(role.ID, RoleInput{
		Name:        "auditor",
		Permissions: []string{authz.PermOrdersViewAny},
	})
	require.Nil(t, rerr)
	assert.Equal(t, "auditor", updated.Name)
	require.Len(t, updated.Permissions, 1)
	assert.Equal(t, authz.PermOrdersViewAny, updated.Permissions[0].Name)
}

func TestRoleDeleteKeepsPermissionCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	seedPermissions(t, svc, authz.PermOrdersViewOwn)

	role, rerr := svc.Create(RoleInput{
		Name:        "shopper",
		Permissions: []string{authz.PermOrdersViewOwn},
	})
	require.Nil(t, rerr)
	require.Nil(t, svc.Delete(role.ID))

	var permissions int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&permissions).Error)
	assert.EqualValues(t, 1, permissions, "detaching a role never deletes catalog entries")
}
