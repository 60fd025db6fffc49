package handlers

import (
	"net/http"

	"ecommerce-api/authz"
	"ecommerce-api/middleware"
	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// List returns the caller's own locations.
func (h *LocationHandler) List(c *gin.Context) {
	user, _ := middleware.Current(c)
	result, rerr := h.locations.ListForUser(user.User.ID, listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "User locations retrieved successfully", result.Data())
}

func (h *LocationHandler) Get(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	location, rerr := h.locations.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanViewLocation(user, *location) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}
	respond(c, http.StatusOK, "User location retrieved successfully", location)
}

type LocationRequest struct {
	Title     string          `json:"title" binding:"required"`
	Address   string          `json:"address" binding:"required"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

func (h *LocationHandler) Create(c *gin.Context) {
	user, _ := middleware.Current(c)
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	location, rerr := h.locations.Create(user.User.ID, services.LocationInput{
		Title:     req.Title,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "User location created successfully", location)
}

func (h *LocationHandler) Update(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	location, rerr := h.locations.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanUpdateLocation(user, *location) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updated, rerr := h.locations.Update(id, services.LocationInput{
		Title:     req.Title,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "User location updated successfully", updated)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	location, rerr := h.locations.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanDeleteLocation(user, *location) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	if rerr := h.locations.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
