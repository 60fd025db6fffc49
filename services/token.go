package services

import (
	"errors"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/resterr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TokenService issues and resolves bearer tokens. The bearer string is a
// signed JWT, but it carries nothing except the id of a personal access token
// row and its ability; validity always resolves against the row, so deleting
// rows revokes tokens no matter what the client still holds.
type TokenService struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(db *gorm.DB, secret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{db: db, secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type tokenClaims struct {
	TokenID string `json:"token_id"`
	Ability string `json:"ability"`
	jwt.RegisteredClaims
}

// TokenPair is what auth endpoints hand to the client.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// IssuePair creates a fresh access/refresh token pair for the user.
func (s *TokenService) IssuePair(user *models.User) (*TokenPair, *resterr.RestErr) {
	access, accessExp, err := s.issue(user, models.AbilityAccessAPI, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.issue(user, models.AbilityIssueAccessToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             "Bearer",
	}, nil
}

func (s *TokenService) issue(user *models.User, ability string, ttl time.Duration) (string, time.Time, *resterr.RestErr) {
	expiresAt := time.Now().Add(ttl)
	record := models.PersonalAccessToken{
		UserID:    user.ID,
		Name:      user.Phone,
		Ability:   ability,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to persist token")
		return "", time.Time{}, resterr.NewInternalServerError("Internal server error")
	}

	claims := tokenClaims{
		TokenID: record.ID.String(),
		Ability: ability,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign token")
		return "", time.Time{}, resterr.NewInternalServerError("Internal server error")
	}
	return signed, expiresAt, nil
}

// Resolve maps a bearer string back to its live token record, with the owning
// user and role permissions loaded. Any failure is Unauthorized; the caller
// never learns whether the token was malformed, revoked, or expired.
func (s *TokenService) Resolve(bearer string) (*models.PersonalAccessToken, *resterr.RestErr) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(bearer, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, resterr.NewUnauthorizedError("Invalid or expired token")
	}

	tokenID, err := uuid.Parse(claims.TokenID)
	if err != nil {
		return nil, resterr.NewUnauthorizedError("Invalid or expired token")
	}

	var record models.PersonalAccessToken
	err = s.db.Preload("User.Roles.Permissions").First(&record, "id = ?", tokenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewUnauthorizedError("Invalid or expired token")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load token record")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	if record.Expired(time.Now()) || record.User.ID == uuid.Nil {
		return nil, resterr.NewUnauthorizedError("Invalid or expired token")
	}
	return &record, nil
}

// RevokeAll deletes every token issued to the user.
func (s *TokenService) RevokeAll(userID uuid.UUID) *resterr.RestErr {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.PersonalAccessToken{}).Error; err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to revoke tokens")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}

// Delete removes a single token record (used for single-use refresh tokens).
func (s *TokenService) Delete(tokenID uuid.UUID) *resterr.RestErr {
	if err := s.db.Delete(&models.PersonalAccessToken{}, "id = ?", tokenID).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete token")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}
