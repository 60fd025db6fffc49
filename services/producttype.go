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

type ProductTypeService struct {
	db    *gorm.DB
	blobs *storage.Disk
}

func NewProductTypeService(db *gorm.DB, blobs *storage.Disk) *ProductTypeService {
	return &ProductTypeService{db: db, blobs: blobs}
}

func (s *ProductTypeService) GetByID(id uuid.UUID) (*models.ProductType, *resterr.RestErr) {
	var productType models.ProductType
	err := s.db.First(&productType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("Product type with ID %s not found", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load product type")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &productType, nil
}

func (s *ProductTypeService) List(params ListParams) (*ListResult[models.ProductType], *resterr.RestErr) {
	q := s.db.Model(&models.ProductType{})
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(t models.ProductType) (time.Time, string) { return t.CreatedAt, t.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.ProductType]{Page: page}, nil
	}
	var types []models.ProductType
	if err := q.Find(&types).Error; err != nil {
		log.Error().Err(err).Msg("failed to list product types")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.ProductType]{All: types}, nil
}

type ProductTypeInput struct {
	Name        string
	Description string
}

func (s *ProductTypeService) Create(in ProductTypeInput, image *multipart.FileHeader) (*models.ProductType, *resterr.RestErr) {
	productType := models.ProductType{
		Name:        in.Name,
		Description: in.Description,
	}
	if image != nil {
		handle, err := s.blobs.Store(image, "product_types")
		if err != nil {
			return nil, blobError(err)
		}
		productType.ImageURL = handle
	}
	if err := s.db.Create(&productType).Error; err != nil {
		log.Error().Err(err).Msg("failed to create product type")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &productType, nil
}

func (s *ProductTypeService) Update(id uuid.UUID, in ProductTypeInput) (*models.ProductType, *resterr.RestErr) {
	productType, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}
	productType.Name = in.Name
	productType.Description = in.Description
	if err := s.db.Save(productType).Error; err != nil {
		log.Error().Err(err).Msg("failed to update product type")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return productType, nil
}

// UpdateImage replaces the type image, deleting the previous blob.
func (s *ProductTypeService) UpdateImage(id uuid.UUID, image *multipart.FileHeader) (*models.ProductType, *resterr.RestErr) {
	productType, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}
	if productType.ImageURL != "" {
		if err := s.blobs.Delete(productType.ImageURL); err != nil {
			log.Error().Err(err).Msg("failed to delete old product type image")
		}
	}
	handle, err := s.blobs.Store(image, "product_types")
	if err != nil {
		return nil, blobError(err)
	}
	productType.ImageURL = handle
	if err := s.db.Save(productType).Error; err != nil {
		log.Error().Err(err).Msg("failed to update product type image")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return productType, nil
}

func (s *ProductTypeService) Delete(id uuid.UUID) *resterr.RestErr {
	productType, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(productType).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete product type")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}
