package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is stored canonically lowercase.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatuses lists every parseable status, for error messages.
var ValidOrderStatuses = []OrderStatus{StatusPending, StatusCompleted, StatusCancelled}

// ParseOrderStatus parses a status value case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// ValidOrderStatusList renders the valid set as "pending, completed or cancelled".
func ValidOrderStatusList() string {
	parts := make([]string, len(ValidOrderStatuses))
	for i, s := range ValidOrderStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	User          User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DeliveryManID *uuid.UUID      `json:"delivery_man_id" gorm:"type:uuid"`
	DeliveryMan   *User           `json:"delivery_man,omitempty" gorm:"foreignKey:DeliveryManID"`
	LocationID    uuid.UUID       `json:"location_id" gorm:"type:uuid;not null;index"`
	Location      UserLocation    `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Status        OrderStatus     `json:"status" gorm:"not null;default:'pending';index"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(16,2);not null"`
	Products      []OrderProduct  `json:"products,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderProduct is one order line. UnitPrice snapshots the product price at
// order time and is never rewritten afterwards.
type OrderProduct struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null"`
	Product   Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(16,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *OrderProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
