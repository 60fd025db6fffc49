package services

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/pagination"
	"ecommerce-api/resterr"
	"ecommerce-api/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService manages the product catalog and the per-user wishlist.
type ProductService struct {
	db         *gorm.DB
	types      *ProductTypeService
	categories *CategoryService
	blobs      *storage.Disk
}

func NewProductService(db *gorm.DB, types *ProductTypeService, categories *CategoryService, blobs *storage.Disk) *ProductService {
	return &ProductService{db: db, types: types, categories: categories, blobs: blobs}
}

// ProductFilters are the optional catalog search predicates. Category and
// ProductType match by name substring.
type ProductFilters struct {
	Category    string
	ProductType string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	IsAvailable *bool
	StockMin    *int
	StockMax    *int
}

func (s *ProductService) applyFilters(q *gorm.DB, f ProductFilters) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category_id IN (?)",
			s.db.Model(&models.ProductCategory{}).Select("id").Where("name LIKE ?", "%"+f.Category+"%"))
	}
	if f.ProductType != "" {
		q = q.Where("product_type_id IN (?)",
			s.db.Model(&models.ProductType{}).Select("id").Where("name LIKE ?", "%"+f.ProductType+"%"))
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.StockMin != nil {
		q = q.Where("stock >= ?", *f.StockMin)
	}
	if f.StockMax != nil {
		q = q.Where("stock <= ?", *f.StockMax)
	}
	return q
}

func (s *ProductService) List(f ProductFilters, params ListParams) (*ListResult[models.Product], *resterr.RestErr) {
	q := s.applyFilters(s.db.Model(&models.Product{}), f)
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(p models.Product) (time.Time, string) { return p.CreatedAt, p.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.Product]{Page: page}, nil
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.Product]{All: products}, nil
}

// GetByID loads a product with its gallery images.
func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, *resterr.RestErr) {
	var product models.Product
	err := s.db.Preload("Images").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError("Product not found")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load product")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &product, nil
}

type ProductInput struct {
	Name          string
	Price         decimal.Decimal
	Description   string
	Stock         int
	Origin        string
	ProductTypeID uuid.UUID
	CategoryID    uuid.UUID
}

// Create validates the type and category references, stores the optional
// cover image and gallery files, and inserts the product.
func (s *ProductService) Create(in ProductInput, image *multipart.FileHeader, gallery []*multipart.FileHeader) (*models.Product, *resterr.RestErr) {
	productType, rerr := s.types.GetByID(in.ProductTypeID)
	if rerr != nil {
		return nil, rerr
	}
	category, rerr := s.categories.GetByID(in.CategoryID, false)
	if rerr != nil {
		return nil, rerr
	}

	product := models.Product{
		Name:          in.Name,
		Price:         in.Price,
		Description:   in.Description,
		Stock:         in.Stock,
		Origin:        in.Origin,
		IsAvailable:   true,
		ProductTypeID: productType.ID,
		CategoryID:    category.ID,
	}
	if image != nil {
		handle, err := s.blobs.Store(image, "products")
		if err != nil {
			return nil, blobError(err)
		}
		product.ImageURL = handle
	}
	if err := s.db.Create(&product).Error; err != nil {
		log.Error().Err(err).Msg("failed to create product")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	if len(gallery) > 0 {
		if rerr := s.addGallery(&product, gallery); rerr != nil {
			return nil, rerr
		}
	}
	return s.GetByID(product.ID)
}

type UpdateProductInput struct {
	Name          *string
	Price         *decimal.Decimal
	Description   *string
	Stock         *int
	Origin        *string
	IsAvailable   *bool
	ProductTypeID *uuid.UUID
	CategoryID    *uuid.UUID
}

func (s *ProductService) Update(id uuid.UUID, in UpdateProductInput) (*models.Product, *resterr.RestErr) {
	product, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}

	if in.ProductTypeID != nil {
		productType, rerr := s.types.GetByID(*in.ProductTypeID)
		if rerr != nil {
			return nil, rerr
		}
		product.ProductTypeID = productType.ID
	}
	if in.CategoryID != nil {
		category, rerr := s.categories.GetByID(*in.CategoryID, false)
		if rerr != nil {
			return nil, rerr
		}
		product.CategoryID = category.ID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Origin != nil {
		product.Origin = *in.Origin
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}

	if err := s.db.Save(product).Error; err != nil {
		log.Error().Err(err).Msg("failed to update product")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return product, nil
}

// UpdateImage replaces the product's cover image and deletes the old blob.
func (s *ProductService) UpdateImage(id uuid.UUID, image *multipart.FileHeader) (*models.Product, *resterr.RestErr) {
	product, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}
	if product.ImageURL != "" {
		if err := s.blobs.Delete(product.ImageURL); err != nil {
			log.Error().Err(err).Msg("failed to delete old product image")
		}
	}
	handle, err := s.blobs.Store(image, "products")
	if err != nil {
		return nil, blobError(err)
	}
	product.ImageURL = handle
	if err := s.db.Save(product).Error; err != nil {
		log.Error().Err(err).Msg("failed to update product image")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return product, nil
}

// UpdateGallery appends images to the product's gallery.
func (s *ProductService) UpdateGallery(id uuid.UUID, gallery []*multipart.FileHeader) (*models.Product, *resterr.RestErr) {
	product, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}
	if rerr := s.addGallery(product, gallery); rerr != nil {
		return nil, rerr
	}
	return s.GetByID(product.ID)
}

func (s *ProductService) addGallery(product *models.Product, gallery []*multipart.FileHeader) *resterr.RestErr {
	for _, file := range gallery {
		handle, err := s.blobs.Store(file, "products")
		if err != nil {
			return blobError(err)
		}
		image := models.ProductImage{ProductID: product.ID, ImageURL: handle}
		if err := s.db.Create(&image).Error; err != nil {
			log.Error().Err(err).Msg("failed to save product image")
			return resterr.NewInternalServerError("Internal server error")
		}
	}
	return nil
}

// Delete soft-deletes the product.
func (s *ProductService) Delete(id uuid.UUID) *resterr.RestErr {
	product, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(product).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete product")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}

// AddToWishlist puts a product on the user's wishlist. Adding twice is a
// Conflict; the (user, product) pair is unique.
func (s *ProductService) AddToWishlist(userID, productID uuid.UUID) (*models.Product, *resterr.RestErr) {
	product, rerr := s.GetByID(productID)
	if rerr != nil {
		if rerr.Code == http.StatusNotFound {
			return nil, resterr.NewNotFoundError("Product not found. Cannot add to wishlist")
		}
		return nil, rerr
	}

	var existing models.FavoriteProduct
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error; err == nil {
		return nil, resterr.NewConflictError("Product is already in the wishlist")
	}

	favorite := models.FavoriteProduct{UserID: userID, ProductID: productID}
	if err := s.db.Create(&favorite).Error; err != nil {
		log.Error().Err(err).Msg("failed to add product to wishlist")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return product, nil
}

// RemoveFromWishlist drops the product from the user's wishlist.
func (s *ProductService) RemoveFromWishlist(userID, productID uuid.UUID) *resterr.RestErr {
	res := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.FavoriteProduct{})
	if res.Error != nil {
		log.Error().Err(res.Error).Msg("failed to remove product from wishlist")
		return resterr.NewInternalServerError("Internal server error")
	}
	if res.RowsAffected == 0 {
		return resterr.NewNotFoundError("Product is not in the wishlist")
	}
	return nil
}

// Wishlist returns the user's wishlisted products, filterable like the
// catalog listing.
func (s *ProductService) Wishlist(userID uuid.UUID, f ProductFilters) ([]models.Product, *resterr.RestErr) {
	productIDs := s.db.Model(&models.FavoriteProduct{}).Select("product_id").Where("user_id = ?", userID)
	q := s.applyFilters(s.db.Model(&models.Product{}).Where("id IN (?)", productIDs), f)

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		log.Error().Err(err).Msg("failed to load wishlist")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return products, nil
}
