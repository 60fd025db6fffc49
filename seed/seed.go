// Package seed bootstraps the permission catalog, the built-in roles, and a
// few starter accounts. Every step is idempotent so it can run on each boot.
package seed

import (
	"ecommerce-api/authz"
	"ecommerce-api/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var permissionCatalog = []models.Permission{
	{Name: authz.PermProductsCreate, Description: "Allows creating new products in the system"},
	{Name: authz.PermProductsUpdate, Description: "Allows updating existing product details"},
	{Name: authz.PermProductsViewAny, Description: "Allows viewing all products in the system"},
	{Name: authz.PermProductsDelete, Description: "Allows deleting products from the system"},
	{Name: authz.PermProductsRestore, Description: "Allows restoring deleted products"},

	{Name: authz.PermUsersViewAny, Description: "Allows viewing all users in the system"},
	{Name: authz.PermUsersViewOwn, Description: "Allows viewing own user profile"},
	{Name: authz.PermUsersCreate, Description: "Allows creating new user accounts"},
	{Name: authz.PermUsersUpdateAny, Description: "Allows updating details of any user"},
	{Name: authz.PermUsersUpdateOwn, Description: "Allows updating own user profile"},
	{Name: authz.PermUsersDeleteAny, Description: "Allows deleting any user account"},
	{Name: authz.PermUsersDeleteOwn, Description: "Allows deleting own user account"},
	{Name: authz.PermUsersRestore, Description: "Allows restoring deleted user accounts"},

	{Name: authz.PermOrdersViewAny, Description: "Allows viewing all orders in the system"},
	{Name: authz.PermOrdersViewOwn, Description: "Allows viewing own orders"},
	{Name: authz.PermOrdersViewAssigned, Description: "Allows viewing orders assigned to the user"},
	{Name: authz.PermOrdersCreate, Description: "Allows creating new orders"},
	{Name: authz.PermOrdersUpdateAny, Description: "Allows updating any order"},
	{Name: authz.PermOrdersUpdateOwn, Description: "Allows updating own orders"},
	{Name: authz.PermOrdersDeleteAny, Description: "Allows deleting any order"},
	{Name: authz.PermOrdersDeleteOwn, Description: "Allows deleting own orders"},
	{Name: authz.PermOrdersRestore, Description: "Allows restoring deleted orders"},

	{Name: authz.PermCategoriesViewAny, Description: "Allows viewing all product categories"},
	{Name: authz.PermCategoriesCreate, Description: "Allows creating new product categories"},
	{Name: authz.PermCategoriesUpdate, Description: "Allows updating existing product categories"},
	{Name: authz.PermCategoriesDelete, Description: "Allows deleting product categories"},
	{Name: authz.PermCategoriesRestore, Description: "Allows restoring deleted product categories"},

	{Name: authz.PermRolesView, Description: "Allows viewing all roles in the system"},
	{Name: authz.PermRolesCreate, Description: "Allows creating new roles"},
	{Name: authz.PermRolesUpdate, Description: "Allows updating existing roles"},
	{Name: authz.PermRolesDelete, Description: "Allows deleting roles"},

	{Name: authz.PermPermissionsView, Description: "Allows viewing all permissions in the system"},
	{Name: authz.PermPermissionsCreate, Description: "Allows creating new permissions"},
	{Name: authz.PermPermissionsUpdate, Description: "Allows updating existing permissions"},
	{Name: authz.PermPermissionsDelete, Description: "Allows deleting permissions"},
}

var userPermissions = []string{
	authz.PermOrdersViewOwn,
	authz.PermOrdersCreate,
	authz.PermProductsViewAny,
	authz.PermUsersViewAny,
	authz.PermUsersViewOwn,
	authz.PermUsersUpdateOwn,
	authz.PermCategoriesViewAny,
}

var deliveryPermissions = []string{
	authz.PermOrdersViewAssigned,
	authz.PermProductsViewAny,
	authz.PermUsersViewAny,
	authz.PermUsersViewOwn,
	authz.PermUsersUpdateOwn,
	authz.PermCategoriesViewAny,
}

// Run seeds permissions, roles, and the bootstrap accounts.
func Run(db *gorm.DB) error {
	for _, p := range permissionCatalog {
		var perm models.Permission
		err := db.Where("name = ?", p.Name).
			Attrs(models.Permission{Name: p.Name, Description: p.Description}).
			FirstOrCreate(&perm).Error
		if err != nil {
			return err
		}
	}

	var all []models.Permission
	if err := db.Find(&all).Error; err != nil {
		return err
	}
	adminNames := make([]string, len(all))
	for i, p := range all {
		adminNames[i] = p.Name
	}

	if err := seedRole(db, models.RoleAdmin, "Full access to every resource", adminNames); err != nil {
		return err
	}
	if err := seedRole(db, models.RoleUser, "Regular shopper", userPermissions); err != nil {
		return err
	}
	if err := seedRole(db, models.RoleDelivery, "Delivers assigned orders", deliveryPermissions); err != nil {
		return err
	}

	if err := seedUser(db, "John Doe", "22996424245", "password", models.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(db, "John Delivery", "1234567890", "password", models.RoleDelivery); err != nil {
		return err
	}
	if err := seedUser(db, "Jane Doe", "0987654321", "password", models.RoleUser); err != nil {
		return err
	}

	log.Info().Msg("database seeded")
	return nil
}

func seedRole(db *gorm.DB, name, description string, permissionNames []string) error {
	var role models.Role
	err := db.Where("name = ?", name).
		Attrs(models.Role{Name: name, Description: description}).
		FirstOrCreate(&role).Error
	if err != nil {
		return err
	}

	var permissions []models.Permission
	if err := db.Where("name IN ?", permissionNames).Find(&permissions).Error; err != nil {
		return err
	}
	return db.Model(&role).Association("Permissions").Replace(permissions)
}

func seedUser(db *gorm.DB, fullname, phone, password, roleName string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}

	user := models.User{
		Fullname:     fullname,
		Phone:        phone,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	return db.Create(&user).Error
}
