package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volneilb/user-registry/internal/domain/entity"
	"github.com/volneilb/user-registry/internal/infrastructure/memory"
)

func newTestService() (*Service, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(repo, logger), repo
}

func input(name, email string) UserInput {
	return UserInput{
		Name:     name,
		Email:    email,
		Birthday: time.Date(1997, 7, 24, 0, 0, 0, 0, time.UTC),
		Address: entity.Address{
			PostalCode:   "12345",
			Street:       "Alguma rua",
			Neighborhood: "Centro",
			City:         "Florianopolis",
			State:        "SC",
			Number:       "100",
		},
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, input("Maria", "maria@email.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, "Alguma rua", first.Address.Street)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input("Impostor", "volnei@email.com"))
	require.ErrorIs(t, err, ErrEmailTaken)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindAllEmptyPopulation(t *testing.T) {
	svc, _ := newTestService()

	users, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestFindByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.FindByID(context.Background(), "b7a7c0f4-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateMissingUserLeavesStoreUnchanged(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing-id", input("Nobody", "nobody@email.com"))
	require.ErrorIs(t, err, ErrUserNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Volnei", all[0].Name)
}

func TestUpdateSameEmailAdvancesUpdatedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	in := input("Volnei B.", "volnei@email.com")
	in.Address.Street = "Outra rua"
	updated, err := svc.Update(ctx, u.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Volnei B.", updated.Name)
	assert.Equal(t, "Outra rua", updated.Address.Street)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateToTakenEmailAppliesNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, input("A", "a@x.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("B", "b@x.com"))
	require.NoError(t, err)

	in := input("A renamed", "b@x.com")
	_, err = svc.Update(ctx, a.ID, in)
	require.ErrorIs(t, err, ErrEmailTaken)

	stored, err := svc.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "A", stored.Name)
	assert.Equal(t, a.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateToFreeEmailSucceeds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, u.ID, input("Volnei", "new@email.com"))
	require.NoError(t, err)
	assert.Equal(t, "new@email.com", updated.Email)
	assert.Equal(t, u.ID, updated.ID)
}

func TestDeleteRemovesUserAndAddress(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))

	_, err = svc.FindByID(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteMissingUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, input("Volnei", "volnei@email.com"))
	require.NoError(t, err)

	err = svc.Delete(ctx, "missing-id")
	require.ErrorIs(t, err, ErrUserNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
