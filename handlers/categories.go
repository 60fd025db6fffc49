package handlers

import (
	"net/http"

	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	result, rerr := h.categories.List(listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product categories retrieved successfully", result.Data())
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, rerr := h.categories.GetByID(id, true)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product category retrieved successfully", category)
}

type CategoryRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	image, _ := c.FormFile("image")

	category, rerr := h.categories.Create(services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	}, image)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "Product category created successfully", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category, rerr := h.categories.Update(id, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product category updated successfully", category)
}

func (h *CategoryHandler) UpdateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	image, err := c.FormFile("image")
	if err != nil {
		respondBindingError(c, err)
		return
	}

	category, rerr := h.categories.UpdateImage(id, image)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product category image updated successfully", category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.categories.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// DeleteMany soft-deletes a batch of categories.
func (h *CategoryHandler) DeleteMany(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if rerr := h.categories.DeleteMany(req.IDs); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Trash lists soft-deleted categories.
func (h *CategoryHandler) Trash(c *gin.Context) {
	categories, rerr := h.categories.ListDeleted()
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Deleted product categories retrieved successfully", categories)
}

// Restore clears a category's deletion timestamp.
func (h *CategoryHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, rerr := h.categories.Restore(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product category restored successfully", category)
}

// ForceDelete permanently removes a category and its image blob.
func (h *CategoryHandler) ForceDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.categories.ForceDelete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
