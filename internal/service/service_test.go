package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/data"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/repository"
)

var testColumns = []string{"TODO", "IN_PROGRESS", "DONE"}

// newTestData opens a named in-memory sqlite database scoped to the test and
// migrates the full schema.
func newTestData(t *testing.T) *data.Data {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// a single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := data.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &data.Data{DB: db}
}

func seedUser(t *testing.T, d *data.Data, externalID string) *model.User {
	t.Helper()
	user := &model.User{
		ExternalID: externalID,
		Name:       "user " + externalID,
		Email:      externalID + "@example.com",
	}
	if err := d.DB.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", externalID, err)
	}
	return user
}

func seedProject(t *testing.T, d *data.Data, orgID string, adminIDs ...string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:           "Test Project",
		Key:            "TP" + strings.ReplaceAll(t.Name(), "/", ""),
		OrganizationID: orgID,
		AdminIDs:       adminIDs,
	}
	if err := d.DB.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func seedSprint(t *testing.T, d *data.Data, projectID string, status model.SprintStatus) *model.Sprint {
	t.Helper()
	sprint := &model.Sprint{
		ProjectID: projectID,
		Name:      "Sprint",
		Status:    status,
	}
	if err := d.DB.Create(sprint).Error; err != nil {
		t.Fatalf("seed sprint: %v", err)
	}
	return sprint
}

func memberCaller(externalID, orgID string) identity.Caller {
	return identity.Caller{UserID: externalID, OrgID: orgID, OrgRole: identity.RoleMember}
}

func adminCaller(externalID, orgID string) identity.Caller {
	return identity.Caller{UserID: externalID, OrgID: orgID, OrgRole: identity.RoleAdmin}
}

func newIssueService(d *data.Data) *IssueService {
	return NewIssueService(d, repository.NewUserRepository(d.DB), testColumns)
}

// fakeProvider is an in-memory identity.Provider for service tests.
type fakeProvider struct {
	orgs    map[string]*identity.Organization // by slug
	members map[string][]identity.Membership  // by org id
}

func (f *fakeProvider) VerifySession(_ context.Context, token string) (*identity.Session, error) {
	return &identity.Session{
		Caller:  identity.Caller{UserID: token, OrgRole: identity.RoleMember},
		Profile: identity.Profile{ExternalID: token},
	}, nil
}

func (f *fakeProvider) GetOrganization(_ context.Context, slug string) (*identity.Organization, error) {
	return f.orgs[slug], nil
}

func (f *fakeProvider) ListMembers(_ context.Context, orgID string) ([]identity.Membership, error) {
	return f.members[orgID], nil
}
