package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
	"github.com/oksasatya/devconnector/pkg/helpers"
	"github.com/oksasatya/devconnector/pkg/mailer"
	mailtpl "github.com/oksasatya/devconnector/pkg/mailer/templates"
)

const minPasswordLen = 6

// IdentityService registers identities and issues their tokens.
type IdentityService struct {
	Repo   repo.IdentityRepository
	JWT    *helpers.JWTManager
	Jobs   JobPublisher // optional; welcome emails are skipped when nil
	Logger *logrus.Logger
}

func NewIdentityService(r repo.IdentityRepository, jwt *helpers.JWTManager, jobs JobPublisher, logger *logrus.Logger) *IdentityService {
	return &IdentityService{Repo: r, JWT: jwt, Jobs: jobs, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NormalizeEmail trims and lowercases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an identity and returns a signed token for it.
// The email lookup runs before any write; the unique index on email closes
// the remaining race.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "identity.Register"

	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	switch {
	case name == "":
		return "", invalid("name", "Type a valid name")
	case email == "" || !strings.Contains(email, "@"):
		return "", invalid("email", "Type a valid email")
	case len(in.Password) < minPasswordLen:
		return "", invalid("password", "Password must be at least 6 chars")
	}

	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrDuplicateIdentity
	case !errors.Is(err, repo.ErrNotFound):
		return "", fmt.Errorf("%s: lookup: %w", op, err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("%s: hash: %w", op, err)
	}

	id := &entity.Identity{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    helpers.GravatarURL(email),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, id); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrDuplicateIdentity
		}
		return "", fmt.Errorf("%s: create: %w", op, err)
	}

	token, _, err := s.JWT.Issue(id.ID)
	if err != nil {
		return "", fmt.Errorf("%s: issue token: %w", op, err)
	}

	s.enqueueWelcome(ctx, id)
	return token, nil
}

// Login checks the password and issues a fresh token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.JWT.Issue(id.ID)
	if err != nil {
		return "", fmt.Errorf("identity.Login: issue token: %w", err)
	}
	return token, nil
}

// Authenticate returns the identity owning email when password matches.
// Unknown email and wrong password are indistinguishable.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	id, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("identity.Authenticate: lookup: %w", err)
	}
	if !helpers.CompareHashAndPassword(id.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return id, nil
}

// Me loads the caller's identity. The password hash never leaves through JSON.
func (s *IdentityService) Me(ctx context.Context, userID string) (*entity.Identity, error) {
	id, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("identity.Me: %w", err)
	}
	return id, nil
}

func (s *IdentityService) enqueueWelcome(ctx context.Context, id *entity.Identity) {
	if s.Jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       id.Email,
		Template: mailtpl.Welcome,
		Data:     map[string]any{"Name": id.Name},
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "enqueue welcome email failed", err, logrus.Fields{"user_id": id.ID})
	}
}
