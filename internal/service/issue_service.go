package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/data"
	"github.com/devrajsawant/dev-scrum/internal/domain"
	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/repository"
)

// createAttempts bounds the retry loop when concurrent creators race for the
// same board slot.
const createAttempts = 3

type IssueService struct {
	Data    *data.Data
	users   repository.UserRepository
	columns []string
}

func NewIssueService(d *data.Data, users repository.UserRepository, columns []string) *IssueService {
	return &IssueService{Data: d, users: users, columns: columns}
}

func (s *IssueService) validColumn(status string) bool {
	for _, col := range s.columns {
		if col == status {
			return true
		}
	}
	return false
}

// ListForSprint returns the sprint's issues ordered by (status, order), with
// assignee and reporter profiles attached. No side effects.
func (s *IssueService) ListForSprint(ctx context.Context, caller identity.Caller, sprintID string) ([]model.Issue, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("list issues: %w", domain.ErrUnauthorized)
	}

	var issues []model.Issue
	err := s.Data.DB.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Order("status ASC").Order(`"order" ASC`).
		Preload("Assignee").Preload("Reporter").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// Create appends a new issue to the bottom of its board column. The next
// order value is computed inside the insert transaction; the unique
// (project_id, status, "order") index rejects a concurrent creator that
// claimed the same slot, in which case the computation is retried.
func (s *IssueService) Create(ctx context.Context, caller identity.Caller, projectID string, req dto.CreateIssueReq) (*model.Issue, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("create issue: %w", domain.ErrUnauthorized)
	}
	if !s.validColumn(req.Status) {
		return nil, fmt.Errorf("unknown workflow column %q: %w", req.Status, domain.ErrValidationConflict)
	}
	priority := model.IssuePriority(req.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidIssuePriority(priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", req.Priority, domain.ErrValidationConflict)
	}

	reporter, err := s.users.GetByExternalID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	issue := &model.Issue{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    priority,
		ProjectID:   projectID,
		SprintID:    req.SprintID,
		ReporterID:  reporter.ID,
		AssigneeID:  req.AssigneeID,
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		err = s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, qerr := nextOrder(tx, projectID, req.Status)
			if qerr != nil {
				return qerr
			}
			issue.Order = next
			return tx.Create(issue).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		// lost the slot to a concurrent create, recompute
		issue.ID = ""
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("board column changed concurrently: %w", domain.ErrValidationConflict)
		}
		return nil, err
	}

	return s.reload(ctx, issue.ID)
}

// UpdateOrder persists a client-computed reorder as one all-or-nothing
// transaction. Rows are first parked on negative orders so the column
// uniqueness index never trips while rows swap places mid-batch; new issues
// only ever receive orders >= 0, so the negative range is free.
func (s *IssueService) UpdateOrder(ctx context.Context, caller identity.Caller, items []dto.IssueOrderItem) error {
	if !caller.InOrg() {
		return fmt.Errorf("reorder issues: %w", domain.ErrUnauthorized)
	}
	for _, it := range items {
		if !s.validColumn(it.Status) {
			return fmt.Errorf("unknown workflow column %q: %w", it.Status, domain.ErrValidationConflict)
		}
	}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, it := range items {
			res := tx.Model(&model.Issue{}).Where("id = ?", it.ID).Update("order", -(i + 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("issue %s: %w", it.ID, domain.ErrNotFound)
			}
		}
		for _, it := range items {
			if err := tx.Model(&model.Issue{}).Where("id = ?", it.ID).
				Updates(map[string]any{"status": it.Status, "order": it.Order}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("reorder collides with existing board rows: %w", domain.ErrValidationConflict)
	default:
		return fmt.Errorf("reorder rolled back: %w: %v", domain.ErrTransactionFailure, err)
	}
}

// Delete removes an issue. Only its reporter or a project admin may do so.
func (s *IssueService) Delete(ctx context.Context, caller identity.Caller, issueID string) error {
	if !caller.InOrg() {
		return fmt.Errorf("delete issue: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByExternalID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return err
	}

	var issue model.Issue
	if err := s.Data.DB.WithContext(ctx).Preload("Project").First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("issue not found: %w", domain.ErrNotFound)
		}
		return err
	}

	if issue.ReporterID != user.ID && !issue.Project.IsAdmin(user.ID) {
		return fmt.Errorf("only the reporter or a project admin can delete an issue: %w", domain.ErrPermissionDenied)
	}

	return s.Data.DB.WithContext(ctx).Delete(&model.Issue{}, "id = ?", issueID).Error
}

// Update applies a partial status/priority update. The issue's project must
// belong to the caller's organization.
func (s *IssueService) Update(ctx context.Context, caller identity.Caller, issueID string, req dto.UpdateIssueReq) (*model.Issue, error) {
	if !caller.InOrg() {
		return nil, fmt.Errorf("update issue: %w", domain.ErrUnauthorized)
	}

	var issue model.Issue
	if err := s.Data.DB.WithContext(ctx).Preload("Project").First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("issue not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if issue.Project.OrganizationID != caller.OrgID {
		return nil, fmt.Errorf("issue belongs to another organization: %w", domain.ErrUnauthorized)
	}

	updates := map[string]any{}
	if req.Status != nil && *req.Status != issue.Status {
		if !s.validColumn(*req.Status) {
			return nil, fmt.Errorf("unknown workflow column %q: %w", *req.Status, domain.ErrValidationConflict)
		}
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		if !model.ValidIssuePriority(model.IssuePriority(*req.Priority)) {
			return nil, fmt.Errorf("unknown priority %q: %w", *req.Priority, domain.ErrValidationConflict)
		}
		updates["priority"] = *req.Priority
	}
	if len(updates) > 0 {
		err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// a column move re-slots the issue at the bottom of the target
			// column, keeping orders unique within (project, status)
			if status, ok := updates["status"]; ok {
				next, err := nextOrder(tx, issue.ProjectID, status.(string))
				if err != nil {
					return err
				}
				updates["order"] = next
			}
			return tx.Model(&model.Issue{}).Where("id = ?", issueID).Updates(updates).Error
		})
		if err != nil {
			return nil, err
		}
	}

	return s.reload(ctx, issueID)
}

// nextOrder computes the append position for a board column: last order + 1,
// or 0 for an empty column.
func nextOrder(tx *gorm.DB, projectID, status string) (int, error) {
	var last model.Issue
	err := tx.Where("project_id = ? AND status = ?", projectID, status).
		Order(`"order" DESC`).First(&last).Error
	switch {
	case err == nil:
		return last.Order + 1, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func (s *IssueService) reload(ctx context.Context, issueID string) (*model.Issue, error) {
	var issue model.Issue
	err := s.Data.DB.WithContext(ctx).
		Preload("Assignee").Preload("Reporter").
		First(&issue, "id = ?", issueID).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}
