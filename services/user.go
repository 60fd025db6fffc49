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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID loads a user with roles and role permissions.
func (s *UserService) GetByID(id uuid.UUID) (*models.User, *resterr.RestErr) {
	var user models.User
	err := s.db.Preload("Roles.Permissions").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("User with ID %s not found", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load user")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &user, nil
}

// List returns users, cursor-paginated when asked.
func (s *UserService) List(params ListParams) (*ListResult[models.User], *resterr.RestErr) {
	q := s.db.Model(&models.User{}).Preload("Roles")
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(u models.User) (time.Time, string) { return u.CreatedAt, u.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.User]{Page: page}, nil
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.User]{All: users}, nil
}

type CreateUserInput struct {
	Fullname string
	Phone    string
	Email    *string
	Password string
	RoleName string
}

// Create is the admin path for creating users. Unlike self-registration it
// may assign any existing role, admin included.
func (s *UserService) Create(in CreateUserInput) (*models.User, *resterr.RestErr) {
	var existing models.User
	err := s.db.Unscoped().Where("phone = ?", in.Phone).First(&existing).Error
	if err == nil {
		return nil, resterr.NewConflictError("A user with this phone number already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to check phone uniqueness")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	var role models.Role
	err = s.db.Where("name = ?", in.RoleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewBadRequestError("Role not found.")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up role")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("failed to hash password")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	user := models.User{
		Fullname:     in.Fullname,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	if err := s.db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &user, nil
}

type UpdateUserInput struct {
	Fullname *string
	Phone    *string
	Email    *string
	Password *string
}

// Update applies the provided fields only.
func (s *UserService) Update(id uuid.UUID, in UpdateUserInput) (*models.User, *resterr.RestErr) {
	user, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}

	if in.Phone != nil && *in.Phone != user.Phone {
		var other models.User
		err := s.db.Unscoped().Where("phone = ? AND id <> ?", *in.Phone, id).First(&other).Error
		if err == nil {
			return nil, resterr.NewConflictError("A user with this phone number already exists.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("failed to check phone uniqueness")
			return nil, resterr.NewInternalServerError("Internal server error")
		}
		user.Phone = *in.Phone
	}
	if in.Fullname != nil {
		user.Fullname = *in.Fullname
	}
	if in.Email != nil {
		user.Email = in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")
			return nil, resterr.NewInternalServerError("Internal server error")
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.Save(user).Error; err != nil {
		log.Error().Err(err).Msg("failed to update user")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return user, nil
}

// Delete soft-deletes the user.
func (s *UserService) Delete(id uuid.UUID) *resterr.RestErr {
	user, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(user).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete user")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}
