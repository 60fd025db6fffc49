package config

import (
	"ecommerce-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database and migrates every model.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.PersonalAccessToken{},
		&models.ProductCategory{},
		&models.ProductType{},
		&models.Product{},
		&models.ProductImage{},
		&models.FavoriteProduct{},
		&models.UserLocation{},
		&models.Order{},
		&models.OrderProduct{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
