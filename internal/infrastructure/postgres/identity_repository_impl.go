package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	"github.com/oksasatya/devconnector/internal/domain/repository"
)

type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// Create inserts the identity. The unique index on email turns a lost
// registration race into repository.ErrDuplicate.
func (r *IdentityRepository) Create(ctx context.Context, i *entity.Identity) error {
	const op = "postgres.IdentityRepository.Create"

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, i.ID, i.Name, i.Email, i.PasswordHash, i.AvatarURL, i.CreatedAt)

	if err := row.Scan(&i.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanIdentity(row, "postgres.IdentityRepository.GetByID")
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanIdentity(row, "postgres.IdentityRepository.GetByEmail")
}

func scanIdentity(row pgx.Row, op string) (*entity.Identity, error) {
	i := &entity.Identity{}
	if err := row.Scan(&i.ID, &i.Name, &i.Email, &i.PasswordHash, &i.AvatarURL, &i.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMissingKey(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return i, nil
}
