package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserLocation struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Title     string          `json:"title" gorm:"not null"`
	Address   string          `json:"address" gorm:"not null"`
	Latitude  decimal.Decimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude decimal.Decimal `json:"longitude" gorm:"type:decimal(10,7)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (l *UserLocation) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
