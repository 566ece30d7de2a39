package application

import (
	"context"

	"github.com/oksasatya/devconnector/internal/domain/entity"
)

// JobPublisher enqueues background jobs. helpers.RabbitPublisher implements it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileIndexer keeps the profile search index in step with the store.
type ProfileIndexer interface {
	Index(ctx context.Context, p *entity.Profile) error
	Delete(ctx context.Context, ownerID string) error
	Search(ctx context.Context, q string, size int) ([]entity.ProfileSummary, error)
}
