package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devrajsawant/dev-scrum/internal/domain"
	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/model"
)

func newSprintFixture(t *testing.T, status model.SprintStatus, start, end time.Time) (*SprintService, *model.Sprint) {
	t.Helper()
	d := newTestData(t)
	svc := NewSprintService(d)

	project := seedProject(t, d, testOrg)
	sprint := &model.Sprint{
		ProjectID: project.ID,
		Name:      "Sprint 1",
		Status:    status,
		StartDate: start,
		EndDate:   end,
	}
	if err := d.DB.Create(sprint).Error; err != nil {
		t.Fatalf("seed sprint: %v", err)
	}
	return svc, sprint
}

func TestSprintCreate(t *testing.T) {
	d := newTestData(t)
	svc := NewSprintService(d)
	ctx := context.Background()

	project := seedProject(t, d, testOrg)
	req := dto.CreateSprintReq{
		Name:      "Sprint 1",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 14),
	}

	sprint, err := svc.Create(ctx, memberCaller("ext_member", testOrg), project.ID, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sprint.Status != model.SprintPlanned {
		t.Errorf("new sprint status = %s, want PLANNED", sprint.Status)
	}

	// project in another org is indistinguishable from a missing one
	_, err = svc.Create(ctx, memberCaller("ext_member", "org_other"), project.ID, req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-org create error = %v, want ErrNotFound", err)
	}

	_, err = svc.Create(ctx, memberCaller("ext_member", testOrg), "missing-id", req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing project create error = %v, want ErrNotFound", err)
	}

	_, err = svc.Create(ctx, memberCaller("", ""), project.ID, req)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous create error = %v, want ErrUnauthorized", err)
	}
}

func TestSprintActivation(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("within date range", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now.AddDate(0, 0, -1), now.AddDate(0, 0, 13))
		svc.now = func() time.Time { return now }

		updated, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive)
		if err != nil {
			t.Fatalf("activate: %v", err)
		}
		if updated.Status != model.SprintActive {
			t.Errorf("status = %s, want ACTIVE", updated.Status)
		}
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now, now)
		svc.now = func() time.Time { return now }

		if _, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive); err != nil {
			t.Fatalf("activate on boundary instant: %v", err)
		}
	})

	t.Run("before start date", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now.AddDate(0, 0, 1), now.AddDate(0, 0, 15))
		svc.now = func() time.Time { return now }

		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive)
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}
	})

	t.Run("after end date", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now.AddDate(0, 0, -20), now.AddDate(0, 0, -6))
		svc.now = func() time.Time { return now }

		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive)
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}
	})

	t.Run("wrong source state", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintCompleted, now.AddDate(0, 0, -1), now.AddDate(0, 0, 13))
		svc.now = func() time.Time { return now }

		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive)
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}
	})

	t.Run("another sprint already active", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now.AddDate(0, 0, -1), now.AddDate(0, 0, 13))
		svc.now = func() time.Time { return now }
		seedSprint(t, svc.Data, sprint.ProjectID, model.SprintActive)

		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintActive)
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}

		// the invariant held: still exactly one ACTIVE sprint in the project
		var active int64
		svc.Data.DB.Model(&model.Sprint{}).
			Where("project_id = ? AND status = ?", sprint.ProjectID, model.SprintActive).
			Count(&active)
		if active != 1 {
			t.Errorf("active sprints = %d, want 1", active)
		}
	})
}

func TestSprintCompletion(t *testing.T) {
	now := time.Now()
	ctx := context.Background()

	svc, sprint := newSprintFixture(t, model.SprintActive, now.AddDate(0, 0, -7), now.AddDate(0, 0, 7))
	updated, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != model.SprintCompleted {
		t.Errorf("status = %s, want COMPLETED", updated.Status)
	}
}

func TestSprintCompletionRequiresActive(t *testing.T) {
	now := time.Now()
	ctx := context.Background()

	svc, sprint := newSprintFixture(t, model.SprintPlanned, now, now.AddDate(0, 0, 14))
	_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintCompleted)
	if !errors.Is(err, domain.ErrValidationConflict) {
		t.Fatalf("complete planned sprint error = %v, want ErrValidationConflict", err)
	}
}

func TestSprintStatusGuards(t *testing.T) {
	now := time.Now()
	ctx := context.Background()

	t.Run("non-admin denied regardless of transition validity", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintActive, now.AddDate(0, 0, -7), now.AddDate(0, 0, 7))
		_, err := svc.UpdateStatus(ctx, memberCaller("ext_member", testOrg), sprint.ID, model.SprintCompleted)
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("error = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("cross-org caller rejected before role check", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintActive, now.AddDate(0, 0, -7), now.AddDate(0, 0, 7))
		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", "org_other"), sprint.ID, model.SprintCompleted)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("unknown target status explicitly rejected", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintPlanned, now, now.AddDate(0, 0, 14))
		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, "ARCHIVED")
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}
		var current model.Sprint
		svc.Data.DB.First(&current, "id = ?", sprint.ID)
		if current.Status != model.SprintPlanned {
			t.Errorf("rejected status was persisted: %s", current.Status)
		}
	})

	t.Run("no backward transition to PLANNED", func(t *testing.T) {
		svc, sprint := newSprintFixture(t, model.SprintActive, now.AddDate(0, 0, -7), now.AddDate(0, 0, 7))
		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), sprint.ID, model.SprintPlanned)
		if !errors.Is(err, domain.ErrValidationConflict) {
			t.Fatalf("error = %v, want ErrValidationConflict", err)
		}
	})

	t.Run("unknown sprint", func(t *testing.T) {
		svc := NewSprintService(newTestData(t))
		_, err := svc.UpdateStatus(ctx, adminCaller("ext_admin", testOrg), "missing-id", model.SprintActive)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}
