package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// respondError maps a typed REST error to its status and the uniform
// {message, errors} envelope. Anything untyped is a 500 with the detail kept
// server-side.
func respondError(c *gin.Context, err error) {
	var rerr *resterr.RestErr
	if errors.As(err, &rerr) {
		c.JSON(rerr.Code, gin.H{
			"message": rerr.Message,
			"errors":  rerr.Causes,
		})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Internal server error",
		"errors":  []resterr.Cause{},
	})
}

// respondBindingError turns gin binding failures into a 422 with per-field
// messages.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		causes := make([]resterr.Cause, 0, len(verrs))
		for _, fe := range verrs {
			causes = append(causes, resterr.NewCause(fe.Field(), validationMessage(fe)))
		}
		respondError(c, resterr.NewValidationError("The given data was invalid.", causes))
		return
	}
	respondError(c, resterr.NewValidationError(err.Error(), nil))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is below the minimum of " + fe.Param()
	case "max":
		return "Value is above the maximum of " + fe.Param()
	case "email":
		return "Must be a valid email address"
	case "eqfield":
		return "Must match " + fe.Param()
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Invalid value"
	}
}

// parseID parses a UUID path parameter; failures read as a missing resource,
// never as a malformed id leaking storage details.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, resterr.NewNotFoundError("Resource not found"))
		return uuid.Nil, false
	}
	return id, true
}

// listParams reads the optional size/cursor pagination query parameters.
// A size of zero (absent) disables pagination.
func listParams(c *gin.Context) services.ListParams {
	size := 0
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	return services.ListParams{
		Size:   size,
		Cursor: c.Query("cursor"),
		Path:   c.Request.URL.Path,
	}
}
