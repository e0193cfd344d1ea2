package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devrajsawant/dev-scrum/internal/model"
)

// UserRepository is the local-store adapter for profile data. The identity
// provider stays the source of truth for membership and roles; this store
// only mirrors profiles of accounts that have authenticated at least once.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByExternalID returns gorm.ErrRecordNotFound when no local record
	// exists for the external account id.
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	ListByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error) {
	var users []model.User
	if len(externalIDs) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("external_id IN ?", externalIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
