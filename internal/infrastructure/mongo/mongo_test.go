package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	"github.com/oksasatya/devconnector/internal/domain/repository"
)

// testTimeout bounds every database call made by a test.
const testTimeout = 10 * time.Second

// TestMain starts one MongoDB container for the package when
// GO_TEST_INTEGRATION is set; each test uses its own database.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}
	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	_ = os.Setenv("MONGO_TEST_URI", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

func newTestMongo(t *testing.T) *Mongo {
	t.Helper()
	base := os.Getenv("MONGO_TEST_URI")
	if base == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, base+"/devconnector_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.db.Drop(context.Background())
		_ = m.Close(context.Background())
	})
	return m
}

func seed(t *testing.T, r *IdentityRepository) *entity.Identity {
	t.Helper()
	i := &entity.Identity{
		ID:           uuid.NewString(),
		Name:         "Ana",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		AvatarURL:    "a.png",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, r.Create(context.Background(), i))
	return i
}

func str(s string) *string { return &s }

func TestDatabaseFromURI(t *testing.T) {
	require.Equal(t, "app", databaseFromURI("mongodb://localhost:27017/app"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
}

func TestIntegration_Identity(t *testing.T) {
	m := newTestMongo(t)
	r := NewIdentityRepository(m)
	ctx := context.Background()
	i := seed(t, r)

	got, err := r.GetByEmail(ctx, i.Email)
	require.NoError(t, err)
	require.Equal(t, i.ID, got.ID)

	dup := *i
	dup.ID = uuid.NewString()
	require.ErrorIs(t, r.Create(ctx, &dup), repository.ErrDuplicate)

	_, err = r.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_Profile_Lifecycle(t *testing.T) {
	m := newTestMongo(t)
	ids := NewIdentityRepository(m)
	r := NewProfileRepository(m)
	ctx := context.Background()
	owner := seed(t, ids)

	_, err := r.GetByOwner(ctx, owner.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	p, created, err := r.Upsert(ctx, owner.ID, entity.ProfileFields{
		Status: str("Developer"),
		Skills: []string{"go", "rust"},
		Social: map[string]string{entity.SocialTwitter: "t"},
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "Ana", p.Owner.Name)
	require.Empty(t, p.Experience)

	p, created, err = r.Upsert(ctx, owner.ID, entity.ProfileFields{Bio: str("hi"), Social: map[string]string{entity.SocialYoutube: "y"}})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "Developer", p.Status)
	require.Equal(t, []string{"go", "rust"}, p.Skills)
	require.Equal(t, "t", p.Social.Twitter)
	require.Equal(t, "y", p.Social.Youtube)

	_, err = r.PrependExperience(ctx, owner.ID, entity.Experience{ID: "e1", Title: "Dev"})
	require.NoError(t, err)
	p, err = r.PrependExperience(ctx, owner.ID, entity.Experience{ID: "e2", Title: "Lead"})
	require.NoError(t, err)
	require.Equal(t, "e2", p.Experience[0].ID)

	p, err = r.RemoveExperience(ctx, owner.ID, "missing")
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)

	p, err = r.RemoveExperience(ctx, owner.ID, "e2")
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ana", list[0].Owner.Name)

	require.NoError(t, r.DeleteAccount(ctx, owner.ID))
	_, err = r.GetByOwner(ctx, owner.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = ids.GetByID(ctx, owner.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_Profile_MissingOwner(t *testing.T) {
	m := newTestMongo(t)
	r := NewProfileRepository(m)

	_, _, err := r.Upsert(context.Background(), uuid.NewString(), entity.ProfileFields{Status: str("Dev")})
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.PrependEducation(context.Background(), uuid.NewString(), entity.Education{ID: "d1"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_Profile_ConcurrentFirstUpsert(t *testing.T) {
	m := newTestMongo(t)
	r := NewProfileRepository(m)
	owner := seed(t, NewIdentityRepository(m))

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	created := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, c, err := r.Upsert(context.Background(), owner.ID, entity.ProfileFields{
				Status: str("Developer"),
				Skills: []string{"go"},
			})
			errs <- err
			created <- c
		}()
	}
	wg.Wait()
	close(errs)
	close(created)

	for err := range errs {
		require.NoError(t, err)
	}
	n := 0
	for c := range created {
		if c {
			n++
		}
	}
	require.Equal(t, 1, n)

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}
