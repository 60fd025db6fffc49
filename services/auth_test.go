package services

import (
	"net/http"
	"testing"
	"time"

	"ecommerce-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (*AuthService, *TokenService) {
	tokens := NewTokenService(db, []byte("test-secret"), time.Hour, 24*time.Hour)
	return NewAuthService(db, tokens), tokens
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	db := newTestDB(t)
	auth, tokens := newAuthService(db)
	seedTestRole(t, db, models.RoleUser)

	result, rerr := auth.Register(RegisterInput{
		Fullname: "Jane Doe",
		Password: "secret-password",
		Phone:    nextPhone(),
		RoleName: models.RoleUser,
	})
	require.Nil(t, rerr)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenPair.TokenType)
	assert.True(t, result.User.HasRole(models.RoleUser))

	record, rerr := tokens.Resolve(result.TokenPair.AccessToken)
	require.Nil(t, rerr)
	assert.True(t, record.Can(models.AbilityAccessAPI))
	assert.Equal(t, result.User.ID, record.UserID)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	seedTestRole(t, db, models.RoleAdmin)

	_, rerr := auth.Register(RegisterInput{
		Fullname: "Mallory",
		Password: "secret-password",
		Phone:    nextPhone(),
		RoleName: models.RoleAdmin,
	})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
	assert.Equal(t, "Cannot assign admin role to user.", rerr.Message)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)

	_, rerr := auth.Register(RegisterInput{
		Fullname: "Jane Doe",
		Password: "secret-password",
		Phone:    nextPhone(),
		RoleName: "superuser",
	})
	require.NotNil(t, rerr)
	assert.Equal(t, "Role not found.", rerr.Message)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	seedTestRole(t, db, models.RoleUser)

	phone := nextPhone()
	in := RegisterInput{Fullname: "Jane Doe", Password: "secret-password", Phone: phone, RoleName: models.RoleUser}
	_, rerr := auth.Register(in)
	require.Nil(t, rerr)

	_, rerr = auth.Register(in)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
	assert.Contains(t, rerr.Message, "already exists")
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	user := createTestUser(t, db, nextPhone(), "right-password", models.RoleUser)

	_, rerr := auth.Authenticate(user.Phone, "wrong-password")
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)

	// an unknown phone yields the exact same response
	_, rerr2 := auth.Authenticate("0000000000", "right-password")
	require.NotNil(t, rerr2)
	assert.Equal(t, rerr.Code, rerr2.Code)
	assert.Equal(t, rerr.Message, rerr2.Message)
}

func TestAuthenticateRevokesEarlierTokens(t *testing.T) {
	db := newTestDB(t)
	auth, tokens := newAuthService(db)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	first, rerr := auth.Authenticate(user.Phone, "secret-password")
	require.Nil(t, rerr)
	second, rerr := auth.Authenticate(user.Phone, "secret-password")
	require.Nil(t, rerr)

	_, rerr = tokens.Resolve(first.TokenPair.AccessToken)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)

	_, rerr = tokens.Resolve(second.TokenPair.AccessToken)
	require.Nil(t, rerr)
}

func TestRefreshTokenWorksExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	result, rerr := auth.Authenticate(user.Phone, "secret-password")
	require.Nil(t, rerr)

	fresh, rerr := auth.Refresh(result.TokenPair.RefreshToken)
	require.Nil(t, rerr)
	assert.NotEmpty(t, fresh.AccessToken)

	_, rerr = auth.Refresh(result.TokenPair.RefreshToken)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	result, rerr := auth.Authenticate(user.Phone, "secret-password")
	require.Nil(t, rerr)

	_, rerr = auth.Refresh(result.TokenPair.AccessToken)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)
}

func TestLogoutRevokesEverything(t *testing.T) {
	db := newTestDB(t)
	auth, tokens := newAuthService(db)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	result, rerr := auth.Authenticate(user.Phone, "secret-password")
	require.Nil(t, rerr)
	require.Nil(t, auth.Logout(user.ID))

	_, rerr = tokens.Resolve(result.TokenPair.AccessToken)
	require.NotNil(t, rerr)
	_, rerr = tokens.Resolve(result.TokenPair.RefreshToken)
	require.NotNil(t, rerr)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenService(db, []byte("test-secret"), -time.Minute, 24*time.Hour)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	pair, rerr := tokens.IssuePair(&user)
	require.Nil(t, rerr)

	_, rerr = tokens.Resolve(pair.AccessToken)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenService(db, []byte("test-secret"), time.Hour, 24*time.Hour)
	other := NewTokenService(db, []byte("other-secret"), time.Hour, 24*time.Hour)
	user := createTestUser(t, db, nextPhone(), "secret-password", models.RoleUser)

	pair, rerr := other.IssuePair(&user)
	require.Nil(t, rerr)

	_, rerr = tokens.Resolve(pair.AccessToken)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnauthorized, rerr.Code)
}
