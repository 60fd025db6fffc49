package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"ecommerce-api/middleware"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errMissingGallery = errors.New("at least one gallery file is required")

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// productFilters reads the catalog search query parameters.
func productFilters(c *gin.Context) services.ProductFilters {
	f := services.ProductFilters{
		Category:    c.Query("category"),
		ProductType: c.Query("product_type"),
	}
	if raw := c.Query("price_min"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			f.PriceMin = &d
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			f.PriceMax = &d
		}
	}
	if raw := c.Query("is_available"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			f.IsAvailable = &b
		}
	}
	if raw := c.Query("stock_min"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.StockMin = &n
		}
	}
	if raw := c.Query("stock_max"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.StockMax = &n
		}
	}
	return f
}

func (h *ProductHandler) List(c *gin.Context) {
	result, rerr := h.products.List(productFilters(c), listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", result.Data())
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, rerr := h.products.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product retrieved successfully", product)
}

type CreateProductRequest struct {
	Name          string          `form:"name" binding:"required"`
	Price         decimal.Decimal `form:"price" binding:"required"`
	Description   string          `form:"description"`
	Stock         int             `form:"stock" binding:"min=0"`
	Origin        string          `form:"origin"`
	ProductTypeID uuid.UUID       `form:"product_type_id" binding:"required"`
	CategoryID    uuid.UUID       `form:"category_id" binding:"required"`
}

// Create accepts multipart form data so the cover image and gallery can ride
// along with the product fields.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	image, _ := c.FormFile("image")
	var gallery []*multipart.FileHeader
	form, _ := c.MultipartForm()
	if form != nil {
		gallery = form.File["gallery"]
	}

	product, rerr := h.products.Create(services.ProductInput{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		Stock:         req.Stock,
		Origin:        req.Origin,
		ProductTypeID: req.ProductTypeID,
		CategoryID:    req.CategoryID,
	}, image, gallery)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusCreated, "Product created successfully", product)
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Price         *decimal.Decimal `json:"price"`
	Description   *string          `json:"description"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	Origin        *string          `json:"origin"`
	IsAvailable   *bool            `json:"is_available"`
	ProductTypeID *uuid.UUID       `json:"product_type_id"`
	CategoryID    *uuid.UUID       `json:"category_id"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	product, rerr := h.products.Update(id, services.UpdateProductInput{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		Stock:         req.Stock,
		Origin:        req.Origin,
		IsAvailable:   req.IsAvailable,
		ProductTypeID: req.ProductTypeID,
		CategoryID:    req.CategoryID,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", product)
}

// UpdateImage replaces the product's cover image.
func (h *ProductHandler) UpdateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	image, err := c.FormFile("image")
	if err != nil {
		respondBindingError(c, err)
		return
	}

	product, rerr := h.products.UpdateImage(id, image)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product image updated successfully", product)
}

// UpdateGallery appends files to the product's gallery.
func (h *ProductHandler) UpdateGallery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil || len(form.File["gallery"]) == 0 {
		respondBindingError(c, errMissingGallery)
		return
	}

	product, rerr := h.products.UpdateGallery(id, form.File["gallery"])
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product gallery updated successfully", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.products.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddToWishlist puts the product on the caller's wishlist.
func (h *ProductHandler) AddToWishlist(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, rerr := h.products.AddToWishlist(user.User.ID, id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Product added to wishlist", product)
}

// RemoveFromWishlist drops the product from the caller's wishlist.
func (h *ProductHandler) RemoveFromWishlist(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if rerr := h.products.RemoveFromWishlist(user.User.ID, id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Wishlist lists the caller's wishlisted products with catalog filters.
func (h *ProductHandler) Wishlist(c *gin.Context) {
	user, _ := middleware.Current(c)
	products, rerr := h.products.Wishlist(user.User.ID, productFilters(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Wishlist retrieved successfully", gin.H{"items": products})
}
