package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	"github.com/oksasatya/devconnector/internal/domain/repository"
)

// ProfileRepository keeps one document per owner in the profiles collection
// with experience and education embedded as arrays, newest first.
type ProfileRepository struct {
	m *Mongo
}

func NewProfileRepository(m *Mongo) *ProfileRepository {
	return &ProfileRepository{m: m}
}

var ownerProjection = options.FindOne().SetProjection(bson.M{"name": 1, "avatar_url": 1})

func (r *ProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.m.profiles.FindOne(ctx, bson.M{"user_id": ownerID}).Decode(&p); err != nil {
		return nil, mapErr("mongo.ProfileRepository.GetByOwner", err)
	}
	return r.populate(ctx, &p)
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	const op = "mongo.ProfileRepository.List"

	cur, err := r.m.profiles.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := []entity.Profile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.OwnerID)
	}
	ucur, err := r.m.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"name": 1, "avatar_url": 1}))
	if err != nil {
		return nil, fmt.Errorf("%s: owners: %w", op, err)
	}
	var owners []entity.Owner
	if err := ucur.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("%s: decode owners: %w", op, err)
	}
	byID := make(map[string]*entity.Owner, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	for i := range out {
		out[i].Owner = byID[out[i].OwnerID]
		out[i].Normalize()
	}
	return out, nil
}

// Upsert issues one updateOne with upsert enabled. Omitted fields are absent
// from $set so stored values stay; social keys are set by dotted path.
func (r *ProfileRepository) Upsert(ctx context.Context, ownerID string, f entity.ProfileFields) (*entity.Profile, bool, error) {
	const op = "mongo.ProfileRepository.Upsert"

	// Mongo has no foreign keys; refuse to create a profile for a missing identity.
	n, err := r.m.users.CountDocuments(ctx, bson.M{"_id": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, false, fmt.Errorf("%s: owner lookup: %w", op, err)
	}
	if n == 0 {
		return nil, false, repository.ErrNotFound
	}

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	setStr := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setStr("company", f.Company)
	setStr("website", f.Website)
	setStr("location", f.Location)
	setStr("bio", f.Bio)
	setStr("status", f.Status)
	setStr("github_username", f.GithubUsername)
	for k, v := range f.Social {
		set["social."+k] = v
	}

	onInsert := bson.M{
		"_id":        uuid.NewString(),
		"created_at": now,
		"experience": bson.A{},
		"education":  bson.A{},
	}
	if f.Skills != nil {
		set["skills"] = f.Skills
	} else {
		onInsert["skills"] = bson.A{}
	}

	update := bson.M{"$set": set, "$setOnInsert": onInsert}
	opts := options.Update().SetUpsert(true)
	res, err := r.m.profiles.UpdateOne(ctx, bson.M{"user_id": ownerID}, update, opts)
	if mongodriver.IsDuplicateKeyError(err) {
		// a concurrent first write won the insert on the user_id index;
		// retrying matches its document and applies this write as an update
		res, err = r.m.profiles.UpdateOne(ctx, bson.M{"user_id": ownerID}, update, opts)
	}
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, false, fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	p, err := r.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	return p, res.UpsertedCount > 0, nil
}

func (r *ProfileRepository) PrependExperience(ctx context.Context, ownerID string, e entity.Experience) (*entity.Profile, error) {
	return r.update(ctx, "mongo.ProfileRepository.PrependExperience", ownerID, bson.M{
		"$push": bson.M{"experience": bson.M{"$each": bson.A{e}, "$position": 0}},
	})
}

func (r *ProfileRepository) PrependEducation(ctx context.Context, ownerID string, e entity.Education) (*entity.Profile, error) {
	return r.update(ctx, "mongo.ProfileRepository.PrependEducation", ownerID, bson.M{
		"$push": bson.M{"education": bson.M{"$each": bson.A{e}, "$position": 0}},
	})
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return r.update(ctx, "mongo.ProfileRepository.RemoveExperience", ownerID, bson.M{
		"$pull": bson.M{"experience": bson.M{"id": entryID}},
	})
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return r.update(ctx, "mongo.ProfileRepository.RemoveEducation", ownerID, bson.M{
		"$pull": bson.M{"education": bson.M{"id": entryID}},
	})
}

// DeleteAccount removes the profile, then the identity. A standalone server
// has no multi-document transactions, so the two deletes are sequential.
func (r *ProfileRepository) DeleteAccount(ctx context.Context, ownerID string) error {
	const op = "mongo.ProfileRepository.DeleteAccount"

	if _, err := r.m.profiles.DeleteOne(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("%s: profile: %w", op, err)
	}
	if _, err := r.m.users.DeleteOne(ctx, bson.M{"_id": ownerID}); err != nil {
		return fmt.Errorf("%s: identity: %w", op, err)
	}
	return nil
}

func (r *ProfileRepository) update(ctx context.Context, op, ownerID string, update bson.M) (*entity.Profile, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}

	var p entity.Profile
	err := r.m.profiles.FindOneAndUpdate(ctx,
		bson.M{"user_id": ownerID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, mapErr(op, err)
	}
	return r.populate(ctx, &p)
}

func (r *ProfileRepository) populate(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	var o entity.Owner
	err := r.m.users.FindOne(ctx, bson.M{"_id": p.OwnerID}, ownerProjection).Decode(&o)
	switch {
	case err == nil:
		p.Owner = &o
	case !errors.Is(err, mongodriver.ErrNoDocuments):
		return nil, fmt.Errorf("mongo.ProfileRepository.populate: %w", err)
	}
	p.Normalize()
	return p, nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
