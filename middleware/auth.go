package middleware

import (
	"strings"

	"ecommerce-api/authz"
	"ecommerce-api/models"
	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "userContext"

// Authenticate validates the bearer token, loads the user with the permission
// union across their roles, and injects the resolved context.
func Authenticate(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWith(c, resterr.NewUnauthorizedError("Authorization header required (Bearer <token>)"))
			return
		}
		bearer := strings.TrimPrefix(authHeader, "Bearer ")

		record, rerr := tokens.Resolve(bearer)
		if rerr != nil {
			abortWith(c, rerr)
			return
		}
		if !record.Can(models.AbilityAccessAPI) {
			abortWith(c, resterr.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		c.Set(userContextKey, authz.UserContext{
			User:        record.User,
			Permissions: authz.NewPermissionSet(record.User.Roles),
		})
		c.Next()
	}
}

// RequirePermission gates a route on a single permission key.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Current(c)
		if !ok || !user.Can(permission) {
			abortWith(c, resterr.NewForbiddenError("Forbidden"))
			return
		}
		c.Next()
	}
}

// Current returns the authenticated user context set by Authenticate.
func Current(c *gin.Context) (authz.UserContext, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return authz.UserContext{}, false
	}
	user, ok := val.(authz.UserContext)
	return user, ok
}

func abortWith(c *gin.Context, rerr *resterr.RestErr) {
	c.AbortWithStatusJSON(rerr.Code, gin.H{
		"message": rerr.Message,
		"errors":  rerr.Causes,
	})
}

// RefreshBearer pulls the raw bearer string for the refresh endpoint, which
// authenticates with the refresh token itself.
func RefreshBearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
