package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/domain"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/repository"
)

// OrgService is the thin lookup layer over the identity provider. Membership
// and roles live there; only profiles live locally.
type OrgService struct {
	users    repository.UserRepository
	provider identity.Provider
}

func NewOrgService(users repository.UserRepository, provider identity.Provider) *OrgService {
	return &OrgService{users: users, provider: provider}
}

// GetOrganization resolves an organization by slug, returning nil when the
// slug is unknown or the caller is not a member. Metadata and membership are
// two separate provider round trips; neither is cached.
func (s *OrgService) GetOrganization(ctx context.Context, caller identity.Caller, slug string) (*identity.Organization, error) {
	if !caller.Authenticated() {
		return nil, fmt.Errorf("get organization: %w", domain.ErrUnauthorized)
	}
	if err := s.requireLocalUser(ctx, caller); err != nil {
		return nil, err
	}

	org, err := s.provider.GetOrganization(ctx, slug)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}

	members, err := s.provider.ListMembers(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.UserID == caller.UserID {
			return org, nil
		}
	}
	return nil, nil
}

// GetOrganizationUsers returns the local User records of an organization's
// members. Members who never authenticated into this application have no
// local record and are silently omitted.
func (s *OrgService) GetOrganizationUsers(ctx context.Context, caller identity.Caller, orgID string) ([]model.User, error) {
	if !caller.Authenticated() {
		return nil, fmt.Errorf("get organization users: %w", domain.ErrUnauthorized)
	}
	if err := s.requireLocalUser(ctx, caller); err != nil {
		return nil, err
	}

	members, err := s.provider.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	externalIDs := make([]string, 0, len(members))
	for _, m := range members {
		if m.UserID != "" {
			externalIDs = append(externalIDs, m.UserID)
		}
	}

	return s.users.ListByExternalIDs(ctx, externalIDs)
}

func (s *OrgService) requireLocalUser(ctx context.Context, caller identity.Caller) error {
	if _, err := s.users.GetByExternalID(ctx, caller.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}
