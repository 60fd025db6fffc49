package handlers

import (
	"net/http"

	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roles *services.RoleService
}

func NewRoleHandler(roles *services.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, rerr := h.roles.List()
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Roles retrieved successfully", roles)
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	role, rerr := h.roles.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Role retrieved successfully", role)
}

type RoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	role, rerr := h.roles.Create(services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "Role created successfully", role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	role, rerr := h.roles.Update(id, services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Role updated successfully", role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.roles.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
