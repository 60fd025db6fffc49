package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token abilities. An access token may call the API; a refresh token may only
// be exchanged for a new pair.
const (
	AbilityAccessAPI        = "access-api"
	AbilityIssueAccessToken = "issue-rt-token"
)

// PersonalAccessToken is the server-side record behind every issued bearer
// string. Deleting the row kills the token regardless of what the client holds.
type PersonalAccessToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Name      string    `json:"name"`
	Ability   string    `json:"ability" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *PersonalAccessToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Can reports whether the token grants the given ability.
func (t *PersonalAccessToken) Can(ability string) bool {
	return t.Ability == ability
}

// Expired reports whether the token is past its expiry timestamp.
func (t *PersonalAccessToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
