package handlers

import (
	"net/http"

	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

type ProductTypeHandler struct {
	types *services.ProductTypeService
}

func NewProductTypeHandler(types *services.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{types: types}
}

func (h *ProductTypeHandler) List(c *gin.Context) {
	result, rerr := h.types.List(listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product types retrieved successfully", result.Data())
}

func (h *ProductTypeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	productType, rerr := h.types.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product type retrieved successfully", productType)
}

type ProductTypeRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
}

func (h *ProductTypeHandler) Create(c *gin.Context) {
	var req ProductTypeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	image, _ := c.FormFile("image")

	productType, rerr := h.types.Create(services.ProductTypeInput{
		Name:        req.Name,
		Description: req.Description,
	}, image)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "Product type created successfully", productType)
}

func (h *ProductTypeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	productType, rerr := h.types.Update(id, services.ProductTypeInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product type updated successfully", productType)
}

func (h *ProductTypeHandler) UpdateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	image, err := c.FormFile("image")
	if err != nil {
		respondBindingError(c, err)
		return
	}

	productType, rerr := h.types.UpdateImage(id, image)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product type image updated successfully", productType)
}

func (h *ProductTypeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.types.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
