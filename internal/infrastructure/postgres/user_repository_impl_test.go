package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volneilb/user-registry/internal/domain/repository"
)

// Malformed ids must resolve to ErrNotFound before any query runs;
// the UUID column would otherwise reject the parameter and turn a
// bad path id into a storage failure. The nil pool proves the
// lookup never reaches Postgres.
func TestGetByIDMalformedID(t *testing.T) {
	repo := NewUserRepository(nil)

	for _, id := range []string{"missing-id", "", "b7a7c0f4-not-a-uuid"} {
		_, err := repo.GetByID(context.Background(), id)
		require.ErrorIs(t, err, repository.ErrNotFound, "id=%q", id)
	}
}

func TestDeleteMalformedID(t *testing.T) {
	repo := NewUserRepository(nil)

	err := repo.Delete(context.Background(), "missing-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
