package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devconnector/internal/domain/entity"
	"github.com/oksasatya/devconnector/internal/domain/repository"
)

// profileColumns selects a profile joined with its owner as alias p / u.
const profileColumns = `
	p.id::text, p.user_id::text,
	COALESCE(p.company, ''), COALESCE(p.website, ''), COALESCE(p.location, ''),
	COALESCE(p.bio, ''), COALESCE(p.status, ''), COALESCE(p.github_username, ''),
	p.skills, p.social, p.experience, p.education, p.created_at, p.updated_at,
	u.name, u.avatar_url`

// ProfileRepository stores profiles in one row per owner; experience and
// education are JSONB arrays kept newest first.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func scanProfile(row pgx.Row, extra ...any) (*entity.Profile, error) {
	p := &entity.Profile{Owner: &entity.Owner{}}
	dest := []any{
		&p.ID, &p.OwnerID,
		&p.Company, &p.Website, &p.Location,
		&p.Bio, &p.Status, &p.GithubUsername,
		&p.Skills, &p.Social, &p.Experience, &p.Education, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.Name, &p.Owner.AvatarURL,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.Owner.ID = p.OwnerID
	p.Normalize()
	return p, nil
}

func (r *ProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*entity.Profile, error) {
	const op = "postgres.ProfileRepository.GetByOwner"

	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`, ownerID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, mapProfileErr(op, err)
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	const op = "postgres.ProfileRepository.List"

	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Upsert is a single INSERT ... ON CONFLICT statement. NULL parameters stand
// for omitted fields and keep the stored value; social keys merge per key.
func (r *ProfileRepository) Upsert(ctx context.Context, ownerID string, f entity.ProfileFields) (*entity.Profile, bool, error) {
	const op = "postgres.ProfileRepository.Upsert"

	var social any
	if len(f.Social) > 0 {
		b, err := json.Marshal(f.Social)
		if err != nil {
			return nil, false, fmt.Errorf("%s: encode social: %w", op, err)
		}
		social = string(b)
	}
	var skills any
	if f.Skills != nil {
		skills = f.Skills
	}

	row := r.pool.QueryRow(ctx, `
		WITH p AS (
			INSERT INTO profiles (id, user_id, company, website, location, bio, status, github_username, skills, social)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::text[], '{}'), COALESCE($10::jsonb, '{}'::jsonb))
			ON CONFLICT (user_id) DO UPDATE SET
				company         = COALESCE(EXCLUDED.company, profiles.company),
				website         = COALESCE(EXCLUDED.website, profiles.website),
				location        = COALESCE(EXCLUDED.location, profiles.location),
				bio             = COALESCE(EXCLUDED.bio, profiles.bio),
				status          = COALESCE(EXCLUDED.status, profiles.status),
				github_username = COALESCE(EXCLUDED.github_username, profiles.github_username),
				skills          = COALESCE($9::text[], profiles.skills),
				social          = profiles.social || COALESCE($10::jsonb, '{}'::jsonb),
				updated_at      = now()
			RETURNING *, (xmax = 0) AS inserted
		)
		SELECT `+profileColumns+`, p.inserted
		FROM p
		JOIN users u ON u.id = p.user_id`,
		uuid.NewString(), ownerID,
		f.Company, f.Website, f.Location, f.Bio, f.Status, f.GithubUsername,
		skills, social,
	)

	var inserted bool
	p, err := scanProfile(row, &inserted)
	if err != nil {
		return nil, false, mapProfileErr(op, err)
	}
	return p, inserted, nil
}

func (r *ProfileRepository) PrependExperience(ctx context.Context, ownerID string, e entity.Experience) (*entity.Profile, error) {
	return r.prepend(ctx, "postgres.ProfileRepository.PrependExperience", "experience", ownerID, []entity.Experience{e})
}

func (r *ProfileRepository) PrependEducation(ctx context.Context, ownerID string, e entity.Education) (*entity.Profile, error) {
	return r.prepend(ctx, "postgres.ProfileRepository.PrependEducation", "education", ownerID, []entity.Education{e})
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return r.remove(ctx, "postgres.ProfileRepository.RemoveExperience", "experience", ownerID, entryID)
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return r.remove(ctx, "postgres.ProfileRepository.RemoveEducation", "education", ownerID, entryID)
}

// prepend puts entry (a one element array) in front of column in one UPDATE.
// column is always one of the two JSONB sequence columns.
func (r *ProfileRepository) prepend(ctx context.Context, op, column, ownerID string, entry any) (*entity.Profile, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		WITH p AS (
			UPDATE profiles
			SET %[1]s = $2::jsonb || %[1]s, updated_at = now()
			WHERE user_id = $1
			RETURNING *
		)
		SELECT `+profileColumns+`
		FROM p
		JOIN users u ON u.id = p.user_id`, column),
		ownerID, string(b),
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, mapProfileErr(op, err)
	}
	return p, nil
}

// remove filters the entry out of column, keeping the order of the rest.
// An unknown entryID rewrites the same sequence.
func (r *ProfileRepository) remove(ctx context.Context, op, column, ownerID, entryID string) (*entity.Profile, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		WITH p AS (
			UPDATE profiles
			SET %[1]s = COALESCE((
					SELECT jsonb_agg(t.e ORDER BY t.ord)
					FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(e, ord)
					WHERE t.e->>'_id' IS DISTINCT FROM $2
				), '[]'::jsonb),
				updated_at = now()
			WHERE user_id = $1
			RETURNING *
		)
		SELECT `+profileColumns+`
		FROM p
		JOIN users u ON u.id = p.user_id`, column),
		ownerID, entryID,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, mapProfileErr(op, err)
	}
	return p, nil
}

// DeleteAccount removes the profile and the identity in one transaction.
func (r *ProfileRepository) DeleteAccount(ctx context.Context, ownerID string) error {
	const op = "postgres.ProfileRepository.DeleteAccount"

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, ownerID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, ownerID)
		return err
	})
	if err != nil {
		if isMissingKey(err) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func mapProfileErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) || isMissingKey(err) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
