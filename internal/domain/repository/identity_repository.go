package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/devconnector/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no document matches the key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// IdentityRepository defines the interface for identity persistence.
type IdentityRepository interface {
	Create(ctx context.Context, i *entity.Identity) error
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
	GetByEmail(ctx context.Context, email string) (*entity.Identity, error)
}
