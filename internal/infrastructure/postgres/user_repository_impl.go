package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volneilb/user-registry/internal/domain/entity"
	"github.com/volneilb/user-registry/internal/domain/repository"
)

const uniqueViolation = "23505"

// UserRepository persists users in a single table with the address
// embedded as columns. The owned address therefore shares the user's
// row lifecycle: deleting the user deletes the address with it.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, birthday,
	address_postal_code, address_street, address_neighborhood, address_city,
	address_state, address_additional_info, address_number,
	created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Birthday,
		&u.Address.PostalCode, &u.Address.Street, &u.Address.Neighborhood, &u.Address.City,
		&u.Address.State, &u.Address.AdditionalInfo, &u.Address.Number,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, u.ID, u.Name, u.Email, u.Birthday,
		u.Address.PostalCode, u.Address.Street, u.Address.Neighborhood, u.Address.City,
		u.Address.State, u.Address.AdditionalInfo, u.Address.Number,
		u.CreatedAt, u.UpdatedAt)
	return mapWriteError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	// The id column is UUID typed; a malformed id can never resolve,
	// so report it as not found instead of letting the cast error
	// surface as a storage failure.
	if uuid.Validate(id) != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, birthday = $3,
			address_postal_code = $4, address_street = $5, address_neighborhood = $6,
			address_city = $7, address_state = $8, address_additional_info = $9,
			address_number = $10, updated_at = $11
		WHERE id = $12
	`, u.Name, u.Email, u.Birthday,
		u.Address.PostalCode, u.Address.Street, u.Address.Neighborhood,
		u.Address.City, u.Address.State, u.Address.AdditionalInfo,
		u.Address.Number, u.UpdatedAt, u.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// mapWriteError surfaces the unique email index as ErrDuplicateEmail
// so the service can report a conflict instead of a storage failure
// when two creates race on the same email.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
