package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/data"
	"github.com/devrajsawant/dev-scrum/internal/domain"
	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/repository"
)

type ProjectService struct {
	Data  *data.Data
	users repository.UserRepository
}

func NewProjectService(d *data.Data, users repository.UserRepository) *ProjectService {
	return &ProjectService{Data: d, users: users}
}

// Create sets up a project in the caller's organization. Only org admins may
// create projects; the creator's local user id seeds the project admin set.
func (s *ProjectService) Create(ctx context.Context, caller identity.Caller, req dto.CreateProjectReq) (*model.Project, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("create project: %w", domain.ErrUnauthorized)
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("only an organization admin can create a project: %w", domain.ErrPermissionDenied)
	}

	creator, err := s.users.GetByExternalID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	project := &model.Project{
		Name:           req.Name,
		Key:            req.Key,
		Description:    req.Description,
		OrganizationID: caller.OrgID,
		AdminIDs:       datatypes.NewJSONSlice([]string{creator.ID}),
	}
	if err := s.Data.DB.WithContext(ctx).Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("project key %q already in use: %w", req.Key, domain.ErrValidationConflict)
		}
		return nil, err
	}
	return project, nil
}

// Get loads a project of the caller's organization with its sprints,
// newest first.
func (s *ProjectService) Get(ctx context.Context, caller identity.Caller, projectID string) (*model.Project, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("get project: %w", domain.ErrUnauthorized)
	}

	var project model.Project
	err := s.Data.DB.WithContext(ctx).
		Preload("Sprints", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&project, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if project.OrganizationID != caller.OrgID {
		return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}
	return &project, nil
}

// ListForOrganization returns the caller's org projects, newest first.
func (s *ProjectService) ListForOrganization(ctx context.Context, caller identity.Caller) ([]model.Project, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("list projects: %w", domain.ErrUnauthorized)
	}

	var projects []model.Project
	err := s.Data.DB.WithContext(ctx).
		Where("organization_id = ?", caller.OrgID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes a project together with its sprints and issues. Org admins
// only. Children go first so the cascade does not depend on database-level
// foreign key enforcement.
func (s *ProjectService) Delete(ctx context.Context, caller identity.Caller, projectID string) error {
	if !caller.InOrg() {
		return fmt.Errorf("delete project: %w", domain.ErrUnauthorized)
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("only an organization admin can delete a project: %w", domain.ErrPermissionDenied)
	}

	var project model.Project
	if err := s.Data.DB.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project not found: %w", domain.ErrNotFound)
		}
		return err
	}
	if project.OrganizationID != caller.OrgID {
		return fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Sprint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", projectID).Error
	})
	if err != nil {
		return fmt.Errorf("project delete rolled back: %w: %v", domain.ErrTransactionFailure, err)
	}
	return nil
}
