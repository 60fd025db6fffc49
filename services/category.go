package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/pagination"
	"ecommerce-api/resterr"
	"ecommerce-api/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CategoryService manages product categories, including the soft-delete
// lifecycle: trash listing, restore, and physical force delete.
type CategoryService struct {
	db    *gorm.DB
	blobs *storage.Disk
}

func NewCategoryService(db *gorm.DB, blobs *storage.Disk) *CategoryService {
	return &CategoryService{db: db, blobs: blobs}
}

// GetByID finds a category. Soft-deleted rows stay addressable when
// includeDeleted is set, so restore and force delete can reach them.
func (s *CategoryService) GetByID(id uuid.UUID, includeDeleted bool) (*models.ProductCategory, *resterr.RestErr) {
	q := s.db
	if includeDeleted {
		q = q.Unscoped()
	}
	var category models.ProductCategory
	err := q.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("Product category with ID %s not found.", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load product category")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &category, nil
}

func (s *CategoryService) List(params ListParams) (*ListResult[models.ProductCategory], *resterr.RestErr) {
	q := s.db.Model(&models.ProductCategory{})
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(c models.ProductCategory) (time.Time, string) { return c.CreatedAt, c.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.ProductCategory]{Page: page}, nil
	}
	var categories []models.ProductCategory
	if err := q.Find(&categories).Error; err != nil {
		log.Error().Err(err).Msg("failed to list product categories")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.ProductCategory]{All: categories}, nil
}

type CategoryInput struct {
	Name        string
	Description string
}

func (s *CategoryService) Create(in CategoryInput, image *multipart.FileHeader) (*models.ProductCategory, *resterr.RestErr) {
	category := models.ProductCategory{
		Name:        in.Name,
		Description: in.Description,
	}
	if image != nil {
		handle, err := s.blobs.Store(image, "product_categories")
		if err != nil {
			return nil, blobError(err)
		}
		category.ImageURL = handle
	}
	if err := s.db.Create(&category).Error; err != nil {
		log.Error().Err(err).Msg("failed to create product category")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &category, nil
}

func (s *CategoryService) Update(id uuid.UUID, in CategoryInput) (*models.ProductCategory, *resterr.RestErr) {
	category, rerr := s.GetByID(id, false)
	if rerr != nil {
		return nil, rerr
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := s.db.Save(category).Error; err != nil {
		log.Error().Err(err).Msg("failed to update product category")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return category, nil
}

// UpdateImage replaces the category image, deleting the previous blob.
func (s *CategoryService) UpdateImage(id uuid.UUID, image *multipart.FileHeader) (*models.ProductCategory, *resterr.RestErr) {
	category, rerr := s.GetByID(id, false)
	if rerr != nil {
		return nil, rerr
	}
	if category.ImageURL != "" {
		if err := s.blobs.Delete(category.ImageURL); err != nil {
			log.Error().Err(err).Msg("failed to delete old category image")
		}
	}
	handle, err := s.blobs.Store(image, "product_categories")
	if err != nil {
		return nil, blobError(err)
	}
	category.ImageURL = handle
	if err := s.db.Save(category).Error; err != nil {
		log.Error().Err(err).Msg("failed to update category image")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return category, nil
}

// Delete soft-deletes the category.
func (s *CategoryService) Delete(id uuid.UUID) *resterr.RestErr {
	category, rerr := s.GetByID(id, false)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(category).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete product category")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}

// DeleteMany soft-deletes a batch of categories; ids that don't resolve are
// reported, not silently skipped.
func (s *CategoryService) DeleteMany(ids []uuid.UUID) *resterr.RestErr {
	for _, id := range ids {
		if rerr := s.Delete(id); rerr != nil {
			return rerr
		}
	}
	return nil
}

// ListDeleted returns only trashed categories.
func (s *CategoryService) ListDeleted() ([]models.ProductCategory, *resterr.RestErr) {
	var categories []models.ProductCategory
	if err := s.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&categories).Error; err != nil {
		log.Error().Err(err).Msg("failed to list deleted product categories")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return categories, nil
}

// Restore clears the deletion timestamp.
func (s *CategoryService) Restore(id uuid.UUID) (*models.ProductCategory, *resterr.RestErr) {
	category, rerr := s.GetByID(id, true)
	if rerr != nil {
		return nil, rerr
	}
	if err := s.db.Unscoped().Model(category).Update("deleted_at", nil).Error; err != nil {
		log.Error().Err(err).Msg("failed to restore product category")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	category.DeletedAt = gorm.DeletedAt{}
	return category, nil
}

// ForceDelete physically removes the row and its image blob.
func (s *CategoryService) ForceDelete(id uuid.UUID) *resterr.RestErr {
	category, rerr := s.GetByID(id, true)
	if rerr != nil {
		return rerr
	}
	if category.ImageURL != "" {
		if err := s.blobs.Delete(category.ImageURL); err != nil {
			log.Error().Err(err).Msg("failed to delete category image blob")
		}
	}
	if err := s.db.Unscoped().Delete(category).Error; err != nil {
		log.Error().Err(err).Msg("failed to force delete product category")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}

// blobError maps storage failures onto the REST taxonomy.
func blobError(err error) *resterr.RestErr {
	switch {
	case errors.Is(err, storage.ErrNotAnImage), errors.Is(err, storage.ErrTooLarge):
		return resterr.NewValidationError(err.Error(), []resterr.Cause{resterr.NewCause("image", err.Error())})
	default:
		log.Error().Err(err).Msg("blob store failure")
		return resterr.NewInternalServerError("Internal server error")
	}
}
