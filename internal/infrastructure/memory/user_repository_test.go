package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volneilb/user-registry/internal/domain/entity"
	"github.com/volneilb/user-registry/internal/domain/repository"
)

func testUser(email string) *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:        uuid.NewString(),
		Name:      "Jane",
		Email:     email,
		Birthday:  time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Address:   entity.Address{PostalCode: "12345", Street: "Rua", Neighborhood: "Centro", City: "SP", State: "SP", Number: "1"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u := testUser("jane@example.com")
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, found)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateEnforcesUniqueEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("jane@example.com")))
	err := repo.Create(ctx, testUser("jane@example.com"))
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestExistsByEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("jane@example.com")))

	ok, err := repo.ExistsByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateRejectsEmailOfAnotherUser(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	a := testUser("a@x.com")
	b := testUser("b@x.com")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Email = "b@x.com"
	err := repo.Update(ctx, a)
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestDeleteMakesUserUnfindable(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u := testUser("jane@example.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first := testUser("a@x.com")
	second := testUser("b@x.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}
