package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Ensure returns the local User for an authenticated account, creating it
// from the provider profile on first access. The external-id mapping is
// immutable once created; later profile changes are not synced back.
func (s *UserService) Ensure(ctx context.Context, profile identity.Profile) (*model.User, error) {
	user, err := s.users.GetByExternalID(ctx, profile.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		ExternalID: profile.ExternalID,
		Name:       profile.Name,
		Email:      profile.Email,
		ImageURL:   profile.ImageURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent first request may have created the row already
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.users.GetByExternalID(ctx, profile.ExternalID)
		}
		return nil, err
	}
	return user, nil
}
