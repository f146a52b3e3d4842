package repository

import (
	"context"
	"errors"

	"github.com/volneilb/user-registry/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the given id.
	ErrNotFound = errors.New("user not found in store")
	// ErrDuplicateEmail is returned when a write would violate the
	// unique email constraint. It backstops the service-level
	// existence check against concurrent writers.
	ErrDuplicateEmail = errors.New("email already stored for another user")
)

// UserRepository defines the persistence boundary for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.User, error)
}
