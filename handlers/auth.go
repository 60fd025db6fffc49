package handlers

import (
	"net/http"

	"ecommerce-api/middleware"
	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Fullname             string `json:"fullname" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                string `json:"phone" binding:"required"`
	RoleName             string `json:"role_name" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns the user with a token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, rerr := h.auth.Register(services.RegisterInput{
		Fullname: req.Fullname,
		Password: req.Password,
		Phone:    req.Phone,
		RoleName: req.RoleName,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}

	respond(c, http.StatusCreated, "User created successfully", gin.H{
		"user":          result.User,
		"access_token":  result.TokenPair.AccessToken,
		"refresh_token": result.TokenPair.RefreshToken,
	})
}

// Login verifies credentials and returns a fresh token pair. Every token
// issued before this login is revoked.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, rerr := h.auth.Authenticate(req.Phone, req.Password)
	if rerr != nil {
		respondError(c, rerr)
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"user":                     result.User,
		"access_token":             result.TokenPair.AccessToken,
		"access_token_expires_at":  result.TokenPair.AccessTokenExpiresAt,
		"refresh_token":            result.TokenPair.RefreshToken,
		"refresh_token_expires_at": result.TokenPair.RefreshTokenExpiresAt,
		"token_type":               result.TokenPair.TokenType,
	})
}

// RefreshToken exchanges the bearer refresh token for a new pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	bearer, ok := middleware.RefreshBearer(c)
	if !ok {
		respondError(c, resterr.NewUnauthorizedError("Authorization header required (Bearer <token>)"))
		return
	}

	pair, rerr := h.auth.Refresh(bearer)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Token refreshed successfully", pair)
}

// Logout revokes every token held by the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := middleware.Current(c)
	if !ok {
		respondError(c, resterr.NewUnauthorizedError("Unauthenticated"))
		return
	}
	if rerr := h.auth.Logout(user.User.ID); rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
