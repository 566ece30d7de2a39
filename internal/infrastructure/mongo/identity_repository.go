package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	"github.com/oksasatya/devconnector/internal/domain/repository"
)

type IdentityRepository struct {
	m *Mongo
}

func NewIdentityRepository(m *Mongo) *IdentityRepository {
	return &IdentityRepository{m: m}
}

func (r *IdentityRepository) Create(ctx context.Context, i *entity.Identity) error {
	if _, err := r.m.users.InsertOne(ctx, i); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("mongo.IdentityRepository.Create: %w", err)
	}
	return nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "mongo.IdentityRepository.GetByID")
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email}, "mongo.IdentityRepository.GetByEmail")
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M, op string) (*entity.Identity, error) {
	var i entity.Identity
	if err := r.m.users.FindOne(ctx, filter).Decode(&i); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}
