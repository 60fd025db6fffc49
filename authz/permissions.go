package authz

import "ecommerce-api/models"

// Permission keys. These mirror the seeded permission catalog exactly; a key
// that is not seeded can never be granted.
const (
	PermProductsCreate  = "products:create"
	PermProductsUpdate  = "products:update"
	PermProductsViewAny = "products:view.any"
	PermProductsDelete  = "products:delete"
	PermProductsRestore = "products:restore"

	PermUsersViewAny   = "users:view.any"
	PermUsersViewOwn   = "users:view.own"
	PermUsersCreate    = "users:create"
	PermUsersUpdateAny = "users:update.any"
	PermUsersUpdateOwn = "users:update.own"
	PermUsersDeleteAny = "users:delete.any"
	PermUsersDeleteOwn = "users:delete.own"
	PermUsersRestore   = "users:restore"

	PermOrdersViewAny      = "orders:view.any"
	PermOrdersViewOwn      = "orders:view.own"
	PermOrdersViewAssigned = "orders:view.assigned"
	PermOrdersCreate       = "orders:create"
	PermOrdersUpdateAny    = "orders:update.any"
	PermOrdersUpdateOwn    = "orders:update.own"
	PermOrdersDeleteAny    = "orders:delete.any"
	PermOrdersDeleteOwn    = "orders:delete.own"
	PermOrdersRestore      = "orders:restore"

	PermCategoriesViewAny = "categories:view.any"
	PermCategoriesCreate  = "categories:create"
	PermCategoriesUpdate  = "categories:update"
	PermCategoriesDelete  = "categories:delete"
	PermCategoriesRestore = "categories:restore"

	PermRolesView   = "roles:view"
	PermRolesCreate = "roles:create"
	PermRolesUpdate = "roles:update"
	PermRolesDelete = "roles:delete"

	PermPermissionsView   = "permissions:view"
	PermPermissionsCreate = "permissions:create"
	PermPermissionsUpdate = "permissions:update"
	PermPermissionsDelete = "permissions:delete"
)

// PermissionSet is the flattened union of permissions across a user's roles.
type PermissionSet map[string]struct{}

// NewPermissionSet flattens the permissions of every loaded role. Any one
// role granting a key is sufficient.
func NewPermissionSet(roles []models.Role) PermissionSet {
	set := make(PermissionSet)
	for _, role := range roles {
		for _, p := range role.Permissions {
			set[p.Name] = struct{}{}
		}
	}
	return set
}

// Can reports whether the set contains the permission key.
func (s PermissionSet) Can(key string) bool {
	_, ok := s[key]
	return ok
}

// UserContext is the resolved identity a request acts as: the authenticated
// user plus the permission union computed at authentication time.
type UserContext struct {
	User        models.User
	Permissions PermissionSet
}

// Can is shorthand for the permission set lookup.
func (u UserContext) Can(key string) bool {
	return u.Permissions.Can(key)
}
