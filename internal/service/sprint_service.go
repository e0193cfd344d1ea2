package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devrajsawant/dev-scrum/internal/data"
	"github.com/devrajsawant/dev-scrum/internal/domain"
	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
)

type SprintService struct {
	Data *data.Data
	now  func() time.Time
}

func NewSprintService(d *data.Data) *SprintService {
	return &SprintService{Data: d, now: time.Now}
}

// Create adds a sprint to a project of the caller's organization. Sprints
// always start out PLANNED.
func (s *SprintService) Create(ctx context.Context, caller identity.Caller, projectID string, req dto.CreateSprintReq) (*model.Sprint, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("create sprint: %w", domain.ErrUnauthorized)
	}

	var project model.Project
	if err := s.Data.DB.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if project.OrganizationID != caller.OrgID {
		// dont leak existence of other orgs' projects
		return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}

	sprint := &model.Sprint{
		ProjectID: projectID,
		Name:      req.Name,
		Status:    model.SprintPlanned,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.Data.DB.WithContext(ctx).Create(sprint).Error; err != nil {
		return nil, err
	}
	return sprint, nil
}

// UpdateStatus drives the PLANNED -> ACTIVE -> COMPLETED state machine.
// Admins only. Activation additionally requires the wall clock to fall inside
// the sprint's date range and no other sprint of the project to be ACTIVE;
// the check and the write run in one transaction holding the project row
// lock, so two concurrent activations serialize instead of both passing the
// check.
func (s *SprintService) UpdateStatus(ctx context.Context, caller identity.Caller, sprintID string, newStatus model.SprintStatus) (*model.Sprint, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("update sprint status: %w", domain.ErrUnauthorized)
	}

	var sprint model.Sprint
	if err := s.Data.DB.WithContext(ctx).Preload("Project").First(&sprint, "id = ?", sprintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sprint not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if sprint.Project.OrganizationID != caller.OrgID {
		return nil, fmt.Errorf("sprint belongs to another organization: %w", domain.ErrUnauthorized)
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("only an organization admin can change sprint status: %w", domain.ErrPermissionDenied)
	}
	if !model.ValidSprintStatus(newStatus) {
		return nil, fmt.Errorf("unknown sprint status %q: %w", newStatus, domain.ErrValidationConflict)
	}
	if newStatus == model.SprintPlanned {
		return nil, fmt.Errorf("a sprint cannot transition back to PLANNED: %w", domain.ErrValidationConflict)
	}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockProjectRow(tx, sprint.ProjectID)

		// re-read under the lock; the preloaded copy may be stale
		var current model.Sprint
		if err := tx.First(&current, "id = ?", sprintID).Error; err != nil {
			return err
		}

		switch newStatus {
		case model.SprintActive:
			now := s.now()
			if now.Before(current.StartDate) || now.After(current.EndDate) {
				return fmt.Errorf("cannot start a sprint outside of its date range: %w", domain.ErrValidationConflict)
			}
			if current.Status != model.SprintPlanned {
				return fmt.Errorf("only a planned sprint can be started: %w", domain.ErrValidationConflict)
			}
			var active int64
			if err := tx.Model(&model.Sprint{}).
				Where("project_id = ? AND status = ? AND id <> ?", current.ProjectID, model.SprintActive, sprintID).
				Count(&active).Error; err != nil {
				return err
			}
			if active > 0 {
				return fmt.Errorf("another sprint is already active: %w", domain.ErrValidationConflict)
			}
		case model.SprintCompleted:
			if current.Status != model.SprintActive {
				return fmt.Errorf("only an active sprint can be completed: %w", domain.ErrValidationConflict)
			}
		}

		return tx.Model(&model.Sprint{}).Where("id = ?", sprintID).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}

	sprint.Status = newStatus
	return &sprint, nil
}

// lockProjectRow takes a FOR UPDATE lock on the project row as the mutex for
// per-project sprint transitions. SQLite has no SELECT ... FOR UPDATE; its
// single-writer transactions already give the same exclusion.
func lockProjectRow(tx *gorm.DB, projectID string) {
	if tx.Dialector.Name() != "postgres" {
		return
	}
	var project model.Project
	tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").First(&project, "id = ?", projectID)
}
