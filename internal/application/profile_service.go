package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

// ProfileService implements the profile aggregate. Every mutation is keyed
// on the caller's owner id and reaches the store as one conditional write.
type ProfileService struct {
	Repo     repo.ProfileRepository
	Accounts repo.AccountRepository
	Index    ProfileIndexer // optional
	Logger   *logrus.Logger
}

func NewProfileService(r repo.ProfileRepository, accounts repo.AccountRepository, index ProfileIndexer, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, Accounts: accounts, Index: index, Logger: logger}
}

// UpsertInput carries the raw profile form. Empty strings mean "not supplied".
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string // comma separated
	Youtube        string
	Facebook       string
	Twitter        string
	Instagram      string
	Linkedin       string
}

// Fields builds the partial field set from the supplied inputs only.
func (in UpsertInput) Fields() entity.ProfileFields {
	opt := func(v string) *string {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return &v
	}
	f := entity.ProfileFields{
		Company:        opt(in.Company),
		Website:        opt(in.Website),
		Location:       opt(in.Location),
		Bio:            opt(in.Bio),
		Status:         opt(in.Status),
		GithubUsername: opt(in.GithubUsername),
	}
	if strings.TrimSpace(in.Skills) != "" {
		f.Skills = entity.ParseSkills(in.Skills)
	}
	for _, k := range entity.SocialKeys {
		v := in.social(k)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if f.Social == nil {
			f.Social = map[string]string{}
		}
		f.Social[k] = v
	}
	return f
}

func (in UpsertInput) social(key string) string {
	switch key {
	case entity.SocialYoutube:
		return in.Youtube
	case entity.SocialFacebook:
		return in.Facebook
	case entity.SocialTwitter:
		return in.Twitter
	case entity.SocialInstagram:
		return in.Instagram
	case entity.SocialLinkedin:
		return in.Linkedin
	}
	return ""
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// GetOwn returns the caller's profile. Reading never creates one.
func (s *ProfileService) GetOwn(ctx context.Context, ownerID string) (*entity.Profile, error) {
	p, err := s.Repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storeErr("profile.GetOwn", err)
	}
	return p, nil
}

// Upsert creates the caller's profile or merges the supplied fields into it.
func (s *ProfileService) Upsert(ctx context.Context, ownerID string, in UpsertInput) (*entity.Profile, error) {
	fields := in.Fields()
	switch {
	case fields.Status == nil:
		return nil, invalid("status", "Status is required")
	case len(fields.Skills) == 0:
		return nil, invalid("skills", "Skills is required")
	}

	p, created, err := s.Repo.Upsert(ctx, ownerID, fields)
	if err != nil {
		return nil, s.storeErr("profile.Upsert", err)
	}
	helpers.LogInfo(s.Logger, "profile saved", logrus.Fields{"user_id": ownerID, "created": created})
	s.reindex(ctx, p)
	return p, nil
}

// ListAll returns every profile; it is public and not owner scoped.
func (s *ProfileService) ListAll(ctx context.Context) ([]entity.Profile, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile.ListAll: %w", err)
	}
	if list == nil {
		list = []entity.Profile{}
	}
	return list, nil
}

// GetByOwner looks up any identity's profile. A key that is not a valid
// identity id fails with ErrMalformedKey, before the store is asked.
func (s *ProfileService) GetByOwner(ctx context.Context, ownerID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, ErrMalformedKey
	}
	p, err := s.Repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storeErr("profile.GetByOwner", err)
	}
	return p, nil
}

// DeleteOwn removes the caller's profile and then the identity itself.
func (s *ProfileService) DeleteOwn(ctx context.Context, ownerID string) error {
	if err := s.Accounts.DeleteAccount(ctx, ownerID); err != nil {
		return fmt.Errorf("profile.DeleteOwn: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, ownerID); err != nil {
			helpers.LogWarn(s.Logger, "profile index delete failed", err, logrus.Fields{"user_id": ownerID})
		}
	}
	return nil
}

// AddExperience prepends a new entry with a fresh id.
func (s *ProfileService) AddExperience(ctx context.Context, ownerID string, in ExperienceInput) (*entity.Profile, error) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, invalid("title", "Title is required.")
	case strings.TrimSpace(in.Company) == "":
		return nil, invalid("company", "Company is required")
	case strings.TrimSpace(in.From) == "":
		return nil, invalid("from", "From date is required")
	}
	e := entity.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	p, err := s.Repo.PrependExperience(ctx, ownerID, e)
	if err != nil {
		return nil, s.storeErr("profile.AddExperience", err)
	}
	return p, nil
}

// AddEducation prepends a new entry with a fresh id.
func (s *ProfileService) AddEducation(ctx context.Context, ownerID string, in EducationInput) (*entity.Profile, error) {
	switch {
	case strings.TrimSpace(in.School) == "":
		return nil, invalid("school", "School is required.")
	case strings.TrimSpace(in.Degree) == "":
		return nil, invalid("degree", "Degree is required")
	case strings.TrimSpace(in.FieldOfStudy) == "":
		return nil, invalid("fieldofstudy", "Field of Study is required")
	case strings.TrimSpace(in.From) == "":
		return nil, invalid("from", "From date is required")
	}
	e := entity.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	p, err := s.Repo.PrependEducation(ctx, ownerID, e)
	if err != nil {
		return nil, s.storeErr("profile.AddEducation", err)
	}
	return p, nil
}

// RemoveExperience drops the entry with entryID. An unknown id is not an
// error: the profile comes back unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	p, err := s.Repo.RemoveExperience(ctx, ownerID, entryID)
	if err != nil {
		return nil, s.storeErr("profile.RemoveExperience", err)
	}
	return p, nil
}

// RemoveEducation mirrors RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	p, err := s.Repo.RemoveEducation(ctx, ownerID, entryID)
	if err != nil {
		return nil, s.storeErr("profile.RemoveEducation", err)
	}
	return p, nil
}

// Search queries the profile index. Without an index it returns no hits.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]entity.ProfileSummary, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.ProfileSummary{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	hits, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("profile.Search: %w", err)
	}
	return hits, nil
}

func (s *ProfileService) storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProfileNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ProfileService) reindex(ctx context.Context, p *entity.Profile) {
	if s.Index == nil || p == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		helpers.LogWarn(s.Logger, "profile index failed", err, logrus.Fields{"user_id": p.OwnerID})
	}
}
