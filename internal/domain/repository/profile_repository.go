package repository

import (
	"context"

	"github.com/oksasatya/devconnector/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/oksasatya/devconnector/internal/domain/repository IdentityRepository,ProfileRepository,AccountRepository

// ProfileRepository is keyed by the owning identity id. Every mutation is a
// single conditional write on the store; reads populate Profile.Owner.
type ProfileRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)

	// Upsert creates the profile or merges fields into the existing one.
	// created reports which of the two happened.
	Upsert(ctx context.Context, ownerID string, fields entity.ProfileFields) (p *entity.Profile, created bool, err error)

	// PrependExperience and PrependEducation return ErrNotFound when the
	// owner has no profile.
	PrependExperience(ctx context.Context, ownerID string, e entity.Experience) (*entity.Profile, error)
	PrependEducation(ctx context.Context, ownerID string, e entity.Education) (*entity.Profile, error)

	// RemoveExperience and RemoveEducation leave the sequence untouched when
	// entryID is absent. They return ErrNotFound only when there is no profile.
	RemoveExperience(ctx context.Context, ownerID, entryID string) (*entity.Profile, error)
	RemoveEducation(ctx context.Context, ownerID, entryID string) (*entity.Profile, error)
}

// AccountRepository removes an owner's profile together with the identity.
type AccountRepository interface {
	DeleteAccount(ctx context.Context, ownerID string) error
}
