package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
	"github.com/oksasatya/devconnector/internal/domain/repository/mocks"
	"github.com/oksasatya/devconnector/pkg/helpers"
	"github.com/oksasatya/devconnector/pkg/mailer"
	mailtpl "github.com/oksasatya/devconnector/pkg/mailer/templates"
)

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return p.err
}

func newIdentityService(t *testing.T) (*IdentityService, *mocks.MockIdentityRepository, *recordingPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := mocks.NewMockIdentityRepository(ctrl)
	pub := &recordingPublisher{}
	svc := NewIdentityService(r, helpers.NewJWTManager("test-secret", time.Hour), pub, helpers.NewDiscardLogger())
	return svc, r, pub
}

func TestRegister_Success(t *testing.T) {
	svc, r, pub := newIdentityService(t)
	ctx := context.Background()

	var stored *entity.Identity
	gomock.InOrder(
		r.EXPECT().GetByEmail(ctx, "ana@example.com").Return(nil, repo.ErrNotFound),
		r.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, i *entity.Identity) error {
			stored = i
			return nil
		}),
	)

	token, err := svc.Register(ctx, RegisterInput{Name: " Ana ", Email: " Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NotNil(t, stored)
	require.Equal(t, "Ana", stored.Name)
	require.Equal(t, "ana@example.com", stored.Email)
	require.NotEqual(t, "secret1", stored.PasswordHash)
	require.True(t, helpers.CompareHashAndPassword(stored.PasswordHash, "secret1"))
	require.Equal(t, helpers.GravatarURL("ana@example.com"), stored.AvatarURL)

	claims, err := svc.JWT.Verify(token)
	require.NoError(t, err)
	require.Equal(t, stored.ID, claims.User.ID)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	require.Equal(t, "ana@example.com", job.To)
	require.Equal(t, mailtpl.Welcome, job.Template)
}

func TestRegister_DuplicateEmailPerformsNoWrite(t *testing.T) {
	svc, r, pub := newIdentityService(t)
	ctx := context.Background()

	r.EXPECT().GetByEmail(ctx, "ana@example.com").Return(&entity.Identity{ID: "u1"}, nil)
	// Create is not expected: the strict controller fails the test on any write.

	token, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrDuplicateIdentity)
	require.Empty(t, token)
	require.Empty(t, pub.jobs)
}

func TestRegister_UniqueViolationIsDuplicate(t *testing.T) {
	svc, r, _ := newIdentityService(t)
	ctx := context.Background()

	r.EXPECT().GetByEmail(ctx, "ana@example.com").Return(nil, repo.ErrNotFound)
	r.EXPECT().Create(ctx, gomock.Any()).Return(repo.ErrDuplicate)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegister_StoreFault(t *testing.T) {
	svc, r, _ := newIdentityService(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	r.EXPECT().GetByEmail(ctx, "ana@example.com").Return(nil, boom)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegister_ValidationTouchesNoStore(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	cases := []struct {
		in    RegisterInput
		param string
	}{
		{RegisterInput{Name: "", Email: "a@b.c", Password: "secret1"}, "name"},
		{RegisterInput{Name: "Ana", Email: "nope", Password: "secret1"}, "email"},
		{RegisterInput{Name: "Ana", Email: "a@b.c", Password: "12345"}, "password"},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.in)
		require.ErrorIs(t, err, ErrValidationFailed)
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, tc.param, fe.Param)
	}
}

func TestRegister_PublishFailureDoesNotFailRegistration(t *testing.T) {
	svc, r, pub := newIdentityService(t)
	pub.err = errors.New("broker down")
	ctx := context.Background()

	r.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, repo.ErrNotFound)
	r.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	token, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestLogin(t *testing.T) {
	svc, r, _ := newIdentityService(t)
	ctx := context.Background()

	hash, err := helpers.HashPassword("secret1")
	require.NoError(t, err)
	stored := &entity.Identity{ID: "6f1c1d2e-8a53-4b6f-9d5c-0a4b3b2d1e0f", Email: "ana@example.com", PasswordHash: hash}

	r.EXPECT().GetByEmail(ctx, "ana@example.com").Return(stored, nil).Times(2)
	r.EXPECT().GetByEmail(ctx, "bob@example.com").Return(nil, repo.ErrNotFound)

	token, err := svc.Login(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	claims, err := svc.JWT.Verify(token)
	require.NoError(t, err)
	require.Equal(t, stored.ID, claims.User.ID)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, r, _ := newIdentityService(t)
	ctx := context.Background()

	r.EXPECT().GetByID(ctx, "u1").Return(&entity.Identity{ID: "u1", Name: "Ana"}, nil)
	r.EXPECT().GetByID(ctx, "u2").Return(nil, repo.ErrNotFound)

	id, err := svc.Me(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Ana", id.Name)

	_, err = svc.Me(ctx, "u2")
	require.ErrorIs(t, err, ErrIdentityNotFound)
}
