package services

import (
	"fmt"
	"testing"

	"ecommerce-api/config"
	"ecommerce-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	// the in-memory database lives on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedTestRole(t *testing.T, db *gorm.DB, name string) models.Role {
	t.Helper()
	var role models.Role
	require.NoError(t, db.Where("name = ?", name).FirstOrCreate(&role, models.Role{Name: name}).Error)
	return role
}

func createTestUser(t *testing.T, db *gorm.DB, phone, password, roleName string) models.User {
	t.Helper()
	role := seedTestRole(t, db, roleName)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Fullname:     "Test " + phone,
		Phone:        phone,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestLocation(t *testing.T, db *gorm.DB, userID uuid.UUID) models.UserLocation {
	t.Helper()
	loc := models.UserLocation{
		UserID:  userID,
		Title:   "Home",
		Address: "1 Main St",
	}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	category := models.ProductCategory{Name: "Category for " + name}
	require.NoError(t, db.Create(&category).Error)
	productType := models.ProductType{Name: "Type for " + name}
	require.NoError(t, db.Create(&productType).Error)

	product := models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Stock:         100,
		IsAvailable:   true,
		CategoryID:    category.ID,
		ProductTypeID: productType.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func newOrderService(db *gorm.DB) *OrderService {
	users := NewUserService(db)
	locations := NewLocationService(db)
	return NewOrderService(db, users, locations)
}

var testPhoneSeq int

func nextPhone() string {
	testPhoneSeq++
	return fmt.Sprintf("555000%04d", testPhoneSeq)
}
