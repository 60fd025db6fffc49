package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-api/authz"
	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newOrderRouter(t *testing.T) (*gorm.DB, *services.TokenService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	// the in-memory database lives on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	tokens := services.NewTokenService(db, []byte("test-secret"), time.Hour, 24*time.Hour)
	users := services.NewUserService(db)
	locations := services.NewLocationService(db)
	h := NewOrderHandler(services.NewOrderService(db, users, locations))

	r := gin.New()
	orders := r.Group("/api/orders", middleware.Authenticate(tokens))
	orders.GET("/user/me", h.ListMine)
	orders.GET("/user/:user_id", h.ListForUser)
	return db, tokens, r
}

func tokenForUser(t *testing.T, db *gorm.DB, tokens *services.TokenService, phone string, perms ...string) (models.User, string) {
	t.Helper()
	role := models.Role{Name: "role-" + phone}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, models.Permission{Name: p})
	}
	require.NoError(t, db.Create(&role).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Fullname:     "Test " + phone,
		Phone:        phone,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	require.NoError(t, db.Create(&user).Error)

	pair, rerr := tokens.IssuePair(&user)
	require.Nil(t, rerr)
	return user, pair.AccessToken
}

func getOrders(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestListForUserRequiresViewPermissionForOwnOrders(t *testing.T) {
	db, tokens, r := newOrderRouter(t)
	user, token := tokenForUser(t, db, tokens, "5550002001")

	w := getOrders(r, "/api/orders/user/"+user.ID.String(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// same contract as the /user/me alias
	w = getOrders(r, "/api/orders/user/me", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListForUserAllowsOwnOrdersWithViewOwn(t *testing.T) {
	db, tokens, r := newOrderRouter(t)
	user, token := tokenForUser(t, db, tokens, "5550002002", authz.PermOrdersViewOwn)

	w := getOrders(r, "/api/orders/user/"+user.ID.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = getOrders(r, "/api/orders/user/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListForUserForbidsOtherUsersWithoutViewAny(t *testing.T) {
	db, tokens, r := newOrderRouter(t)
	_, token := tokenForUser(t, db, tokens, "5550002003", authz.PermOrdersViewOwn)
	other, _ := tokenForUser(t, db, tokens, "5550002004")

	w := getOrders(r, "/api/orders/user/"+other.ID.String(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListForUserAllowsOtherUsersWithViewAny(t *testing.T) {
	db, tokens, r := newOrderRouter(t)
	_, token := tokenForUser(t, db, tokens, "5550002005", authz.PermOrdersViewAny)
	other, _ := tokenForUser(t, db, tokens, "5550002006")

	w := getOrders(r, "/api/orders/user/"+other.ID.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
