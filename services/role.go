package services

import (
	"errors"
	"fmt"

	"ecommerce-api/models"
	"ecommerce-api/resterr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) List() ([]models.Role, *resterr.RestErr) {
	var roles []models.Role
	if err := s.db.Preload("Permissions").Find(&roles).Error; err != nil {
		log.Error().Err(err).Msg("failed to list roles")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return roles, nil
}

func (s *RoleService) GetByID(id uuid.UUID) (*models.Role, *resterr.RestErr) {
	var role models.Role
	err := s.db.Preload("Permissions").First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("Role with ID %s not found", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load role")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &role, nil
}

type RoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// Create adds a role and attaches the named permissions. Unknown permission
// names are a BadRequest; the permission catalog is immutable.
func (s *RoleService) Create(in RoleInput) (*models.Role, *resterr.RestErr) {
	var existing models.Role
	if err := s.db.Where("name = ?", in.Name).First(&existing).Error; err == nil {
		return nil, resterr.NewConflictError(fmt.Sprintf("Role %s already exists", in.Name))
	}

	permissions, rerr := s.resolvePermissions(in.Permissions)
	if rerr != nil {
		return nil, rerr
	}

	role := models.Role{
		Name:        in.Name,
		Description: in.Description,
		Permissions: permissions,
	}
	if err := s.db.Create(&role).Error; err != nil {
		log.Error().Err(err).Msg("failed to create role")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &role, nil
}

func (s *RoleService) Update(id uuid.UUID, in RoleInput) (*models.Role, *resterr.RestErr) {
	role, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}

	role.Name = in.Name
	role.Description = in.Description
	if err := s.db.Save(role).Error; err != nil {
		log.Error().Err(err).Msg("failed to update role")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	if in.Permissions != nil {
		permissions, rerr := s.resolvePermissions(in.Permissions)
		if rerr != nil {
			return nil, rerr
		}
		if err := s.db.Model(role).Association("Permissions").Replace(permissions); err != nil {
			log.Error().Err(err).Msg("failed to replace role permissions")
			return nil, resterr.NewInternalServerError("Internal server error")
		}
		role.Permissions = permissions
	}
	return role, nil
}

func (s *RoleService) Delete(id uuid.UUID) *resterr.RestErr {
	role, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Select("Permissions").Delete(role).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete role")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}

func (s *RoleService) resolvePermissions(names []string) ([]models.Permission, *resterr.RestErr) {
	if len(names) == 0 {
		return nil, nil
	}
	var permissions []models.Permission
	if err := s.db.Where("name IN ?", names).Find(&permissions).Error; err != nil {
		log.Error().Err(err).Msg("failed to resolve permissions")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	if len(permissions) != len(names) {
		found := make(map[string]bool, len(permissions))
		for _, p := range permissions {
			found[p.Name] = true
		}
		for _, name := range names {
			if !found[name] {
				return nil, resterr.NewBadRequestError(fmt.Sprintf("Permission %s does not exist", name))
			}
		}
	}
	return permissions, nil
}
