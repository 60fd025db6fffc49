package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string          `json:"name" gorm:"uniqueIndex;not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(16,2);not null"`
	Description   string          `json:"description"`
	Stock         int             `json:"stock" gorm:"not null;default:0"`
	Origin        string          `json:"origin"`
	IsAvailable   bool            `json:"is_available" gorm:"default:true"`
	ImageURL      string          `json:"image_url"`
	CategoryID    uuid.UUID       `json:"category_id" gorm:"type:uuid;not null"`
	Category      ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ProductTypeID uuid.UUID       `json:"product_type_id" gorm:"type:uuid;not null"`
	ProductType   ProductType     `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
	Images        []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductCategory struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Products    []Product      `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ProductType struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Products    []Product      `json:"products,omitempty" gorm:"foreignKey:ProductTypeID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *ProductType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// FavoriteProduct is one wishlist entry, unique per (user, product).
type FavoriteProduct struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:ux_favorite_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:ux_favorite_user_product"`
	Product   Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *FavoriteProduct) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
