package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
)

var (
	_ repo.IdentityRepository = (*Store)(nil)
	_ repo.ProfileRepository  = (*Store)(nil)
	_ repo.AccountRepository  = (*Store)(nil)
)

func strp(s string) *string { return &s }

func seedIdentity(t *testing.T, s *Store, email string) *entity.Identity {
	t.Helper()
	i := &entity.Identity{Name: "Ana", Email: email, AvatarURL: "//gravatar/ana"}
	require.NoError(t, s.Create(context.Background(), i))
	return i
}

func TestStore_IdentityUniqueEmail(t *testing.T) {
	s := NewStore()
	seedIdentity(t, s, "ana@example.com")
	err := s.Create(context.Background(), &entity.Identity{Email: "ana@example.com"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	_, err = s.GetByEmail(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStore_UpsertMergesAndPopulates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ana := seedIdentity(t, s, "ana@example.com")

	p, created, err := s.Upsert(ctx, ana.ID, entity.ProfileFields{
		Status: strp("Developer"),
		Skills: []string{"go"},
		Social: map[string]string{"twitter": "t"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, p.Owner)
	assert.Equal(t, "Ana", p.Owner.Name)
	assert.Equal(t, []entity.Experience{}, p.Experience)

	p, created, err = s.Upsert(ctx, ana.ID, entity.ProfileFields{
		Company: strp("Acme"),
		Social:  map[string]string{"youtube": "y"},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, []string{"go"}, p.Skills)
	assert.Equal(t, "t", p.Social.Twitter)
	assert.Equal(t, "y", p.Social.Youtube)
}

func TestStore_UpsertUnknownOwner(t *testing.T) {
	_, _, err := NewStore().Upsert(context.Background(), "nobody", entity.ProfileFields{})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStore_EntriesAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ana := seedIdentity(t, s, "ana@example.com")

	_, err := s.PrependExperience(ctx, ana.ID, entity.Experience{ID: "x"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, _, err = s.Upsert(ctx, ana.ID, entity.ProfileFields{Status: strp("Dev")})
	require.NoError(t, err)
	_, err = s.PrependExperience(ctx, ana.ID, entity.Experience{ID: "a"})
	require.NoError(t, err)
	p, err := s.PrependExperience(ctx, ana.ID, entity.Experience{ID: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", p.Experience[0].ID)

	p, err = s.RemoveExperience(ctx, ana.ID, "missing")
	require.NoError(t, err)
	assert.Len(t, p.Experience, 2)

	p, err = s.RemoveExperience(ctx, ana.ID, "b")
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "a", p.Experience[0].ID)

	require.NoError(t, s.DeleteAccount(ctx, ana.ID))
	_, err = s.GetByOwner(ctx, ana.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = s.GetByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
