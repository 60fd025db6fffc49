package services

import (
	"errors"

	"ecommerce-api/models"
	"ecommerce-api/resterr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login, refresh and logout.
type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type RegisterInput struct {
	Fullname string
	Password string
	Phone    string
	RoleName string
}

// AuthResult bundles the user with a freshly issued token pair.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

// Register creates a user, assigns the requested role, and issues tokens.
// The admin role can never be claimed through this path.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, *resterr.RestErr) {
	var existing models.User
	err := s.db.Unscoped().Where("phone = ?", in.Phone).First(&existing).Error
	if err == nil {
		return nil, resterr.NewConflictError("A user with this phone number already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to check phone uniqueness")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	var role models.Role
	err = s.db.Where("name = ?", in.RoleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewBadRequestError("Role not found.")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up role")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	if role.Name == models.RoleAdmin {
		log.Warn().Str("phone", in.Phone).Msg("attempt to self-register with admin role")
		return nil, resterr.NewBadRequestError("Cannot assign admin role to user.")
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("failed to hash password")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	user := models.User{
		Fullname:     in.Fullname,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	if err := s.db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	pair, rerr := s.tokens.IssuePair(&user)
	if rerr != nil {
		return nil, rerr
	}
	return &AuthResult{User: &user, TokenPair: pair}, nil
}

// Authenticate verifies the credentials, revokes every previously issued
// token (single active session), and issues a new pair. The response never
// distinguishes an unknown phone from a wrong password.
func (s *AuthService) Authenticate(phone, password string) (*AuthResult, *resterr.RestErr) {
	var user models.User
	err := s.db.Preload("Roles").Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Str("phone", phone).Msg("failed login attempt")
		return nil, resterr.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("phone", phone).Msg("failed login attempt")
		return nil, resterr.NewUnauthorizedError("Invalid credentials")
	}

	if rerr := s.tokens.RevokeAll(user.ID); rerr != nil {
		return nil, rerr
	}
	pair, rerr := s.tokens.IssuePair(&user)
	if rerr != nil {
		return nil, rerr
	}
	return &AuthResult{User: &user, TokenPair: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. The used refresh token is
// deleted first: each refresh token works exactly once.
func (s *AuthService) Refresh(bearer string) (*TokenPair, *resterr.RestErr) {
	record, rerr := s.tokens.Resolve(bearer)
	if rerr != nil {
		return nil, rerr
	}
	if !record.Can(models.AbilityIssueAccessToken) {
		return nil, resterr.NewUnauthorizedError("Invalid or expired refresh token")
	}
	if rerr := s.tokens.Delete(record.ID); rerr != nil {
		return nil, rerr
	}
	return s.tokens.IssuePair(&record.User)
}

// Logout revokes every token held by the user.
func (s *AuthService) Logout(userID uuid.UUID) *resterr.RestErr {
	return s.tokens.RevokeAll(userID)
}
