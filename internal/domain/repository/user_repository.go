package repository

import (
	"context"

	"github.com/todocards/api/internal/domain/entity"
)

// UserRepository is the persistence contract for the per-user document.
// Reads return the whole subtree (profile + lists) plus its version;
// SaveLists is a compare-and-swap against that version and reports
// entity.ErrConflict when a concurrent write got there first.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, u *entity.User) error
	SaveLists(ctx context.Context, userID string, lists []entity.List, expectedVersion int64) error
}
