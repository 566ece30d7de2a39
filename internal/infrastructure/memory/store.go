package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
)

// Store keeps identities and profiles in process memory. It implements
// IdentityRepository, ProfileRepository and AccountRepository with the same
// observable semantics as the database stores; every method holds the lock
// for its whole read-modify-write.
type Store struct {
	mu         sync.RWMutex
	identities map[string]entity.Identity
	byEmail    map[string]string
	profiles   map[string]entity.Profile
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		identities: map[string]entity.Identity{},
		byEmail:    map[string]string{},
		profiles:   map[string]entity.Profile{},
		now:        time.Now,
	}
}

func (s *Store) Create(_ context.Context, i *entity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[i.Email]; ok {
		return repo.ErrDuplicate
	}
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = s.now().UTC()
	}
	s.identities[i.ID] = *i
	s.byEmail[i.Email] = i.ID
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*entity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.identities[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &i, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*entity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	i := s.identities[id]
	return &i, nil
}

func (s *Store) GetByOwner(_ context.Context, ownerID string) (*entity.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[ownerID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.populate(p), nil
}

func (s *Store) List(_ context.Context) ([]entity.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *s.populate(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) Upsert(_ context.Context, ownerID string, fields entity.ProfileFields) (*entity.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[ownerID]; !ok {
		return nil, false, repo.ErrNotFound
	}
	now := s.now().UTC()
	p, exists := s.profiles[ownerID]
	if !exists {
		p = entity.Profile{ID: uuid.NewString(), OwnerID: ownerID, CreatedAt: now}
	}
	fields.Apply(&p)
	p.UpdatedAt = now
	s.profiles[ownerID] = p
	return s.populate(p), !exists, nil
}

func (s *Store) PrependExperience(_ context.Context, ownerID string, e entity.Experience) (*entity.Profile, error) {
	return s.mutate(ownerID, func(p *entity.Profile) {
		p.Experience = append([]entity.Experience{e}, p.Experience...)
	})
}

func (s *Store) PrependEducation(_ context.Context, ownerID string, e entity.Education) (*entity.Profile, error) {
	return s.mutate(ownerID, func(p *entity.Profile) {
		p.Education = append([]entity.Education{e}, p.Education...)
	})
}

func (s *Store) RemoveExperience(_ context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return s.mutate(ownerID, func(p *entity.Profile) {
		kept := make([]entity.Experience, 0, len(p.Experience))
		for _, e := range p.Experience {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		p.Experience = kept
	})
}

func (s *Store) RemoveEducation(_ context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return s.mutate(ownerID, func(p *entity.Profile) {
		kept := make([]entity.Education, 0, len(p.Education))
		for _, e := range p.Education {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		p.Education = kept
	})
}

// DeleteAccount removes the profile and the identity. Missing records are not an error.
func (s *Store) DeleteAccount(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, ownerID)
	if i, ok := s.identities[ownerID]; ok {
		delete(s.byEmail, i.Email)
		delete(s.identities, ownerID)
	}
	return nil
}

func (s *Store) mutate(ownerID string, fn func(p *entity.Profile)) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[ownerID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = s.now().UTC()
	s.profiles[ownerID] = p
	return s.populate(p), nil
}

// populate returns a copy of p with the owner attached; callers hold the lock.
func (s *Store) populate(p entity.Profile) *entity.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append([]entity.Experience(nil), p.Experience...)
	p.Education = append([]entity.Education(nil), p.Education...)
	if i, ok := s.identities[p.OwnerID]; ok {
		p.Owner = &entity.Owner{ID: i.ID, Name: i.Name, AvatarURL: i.AvatarURL}
	}
	p.Normalize()
	return &p
}
