package handlers

import (
	"net/http"

	"ecommerce-api/authz"
	"ecommerce-api/middleware"
	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	user, _ := middleware.Current(c)
	if !authz.CanViewAnyUser(user) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	result, rerr := h.users.List(listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", result.Data())
}

func (h *UserHandler) Get(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	target, rerr := h.users.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanViewUser(user, *target) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", target)
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, _ := middleware.Current(c)
	respond(c, http.StatusOK, "User retrieved successfully", user.User)
}

type CreateUserRequest struct {
	Fullname string  `json:"fullname" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8"`
	RoleName string  `json:"role_name" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	user, _ := middleware.Current(c)
	if !authz.CanCreateUser(user) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	created, rerr := h.users.Create(services.CreateUserInput{
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.RoleName,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "User created successfully", created)
}

type UpdateUserRequest struct {
	Fullname *string `json:"fullname"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

func (h *UserHandler) Update(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	target, rerr := h.users.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanUpdateUser(user, *target) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updated, rerr := h.users.Update(id, services.UpdateUserInput{
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	target, rerr := h.users.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanDeleteUser(user, *target) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	if rerr := h.users.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
