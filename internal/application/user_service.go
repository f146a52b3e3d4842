package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/volneilb/user-registry/internal/domain/entity"
	repo "github.com/volneilb/user-registry/internal/domain/repository"
)

var (
	ErrUserNotFound = errors.New("user could not be found")
	ErrEmailTaken   = errors.New("user with the informed email already exists")
	// ErrStorage deliberately hides the underlying store error from
	// callers; the cause is logged, never surfaced.
	ErrStorage = errors.New("error while accessing user store")
)

// Service orchestrates the user lifecycle against the repository.
// It enforces email uniqueness and existence checks strictly before
// any mutating store call, so a failed operation never leaves a
// partially applied user behind.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

// UserInput carries the validated fields of a create/update request.
// Structural validation (presence, email syntax, lengths) is the HTTP
// layer's job; the service assumes it already passed.
type UserInput struct {
	Name     string
	Email    string
	Birthday time.Time
	Address  entity.Address
}

// Create checks email uniqueness, then persists a new user with a
// fresh id and equal created/updated timestamps.
func (s *Service) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	taken, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, s.storageFailure("email existence check failed", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	u := &entity.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Birthday:  in.Birthday,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The store's unique index may catch a concurrent create that
		// slipped past the pre-check.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storageFailure("saving user failed", err)
	}
	return u, nil
}

// FindAll returns the full current population. Order is whatever the
// store yields; an empty population is a valid, non-error result.
func (s *Service) FindAll(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, s.storageFailure("listing users failed", err)
	}
	if users == nil {
		users = []*entity.User{}
	}
	return users, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageFailure("loading user failed", err)
	}
	return u, nil
}

// Update replaces name, birthday and address unconditionally. The
// email is replaced only when it differs from the stored one, in
// which case the uniqueness check runs again before any field is
// touched. A failing check leaves the stored user exactly as it was.
func (s *Service) Update(ctx context.Context, id string, in UserInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageFailure("loading user failed", err)
	}

	if in.Email != u.Email {
		taken, err := s.Repo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, s.storageFailure("email existence check failed", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
		u.Email = in.Email
	}

	u.Name = in.Name
	u.Birthday = in.Birthday
	u.Address = in.Address
	u.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storageFailure("saving user failed", err)
	}
	return u, nil
}

// Delete removes the user and its address together. No notification
// is emitted for deletions.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return s.storageFailure("loading user failed", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return s.storageFailure("deleting user failed", err)
	}
	return nil
}

func (s *Service) storageFailure(msg string, err error) error {
	if s.Logger != nil {
		s.Logger.WithError(err).Error(msg)
	}
	return ErrStorage
}
