package services

import (
	"errors"
	"fmt"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/pagination"
	"ecommerce-api/resterr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) GetByID(id uuid.UUID) (*models.UserLocation, *resterr.RestErr) {
	var location models.UserLocation
	err := s.db.First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("User location with ID %s not found", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load user location")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &location, nil
}

// ListForUser returns one user's locations.
func (s *LocationService) ListForUser(userID uuid.UUID, params ListParams) (*ListResult[models.UserLocation], *resterr.RestErr) {
	q := s.db.Model(&models.UserLocation{}).Where("user_id = ?", userID)
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(l models.UserLocation) (time.Time, string) { return l.CreatedAt, l.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.UserLocation]{Page: page}, nil
	}
	var locations []models.UserLocation
	if err := q.Find(&locations).Error; err != nil {
		log.Error().Err(err).Msg("failed to list user locations")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.UserLocation]{All: locations}, nil
}

type LocationInput struct {
	Title     string
	Address   string
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

func (s *LocationService) Create(userID uuid.UUID, in LocationInput) (*models.UserLocation, *resterr.RestErr) {
	location := models.UserLocation{
		UserID:    userID,
		Title:     in.Title,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if err := s.db.Create(&location).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user location")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &location, nil
}

func (s *LocationService) Update(id uuid.UUID, in LocationInput) (*models.UserLocation, *resterr.RestErr) {
	location, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}
	location.Title = in.Title
	location.Address = in.Address
	location.Latitude = in.Latitude
	location.Longitude = in.Longitude
	if err := s.db.Save(location).Error; err != nil {
		log.Error().Err(err).Msg("failed to update user location")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return location, nil
}

func (s *LocationService) Delete(id uuid.UUID) *resterr.RestErr {
	location, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(location).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete user location")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}
