package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

const profileColumns = "id, user_id, first_name, last_name, bio, avatar_url, created_at, updated_at"

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, first_name, last_name, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName,
		profile.Bio, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt)
}

func (r *ProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.scanProfile(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	return r.scanProfile(ctx, "SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID)
}

// Update touches only the provided fields; nil pointers keep the stored value.
// Returns (nil, nil) when the id does not exist.
func (r *ProfileRepo) Update(ctx context.Context, id int64, changes repository.ProfileChanges) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    bio = COALESCE($4, bio),
		    avatar_url = CASE WHEN $6 THEN NULL ELSE COALESCE($5, avatar_url) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	return r.scanProfile(ctx, query, id,
		changes.FirstName, changes.LastName, changes.Bio,
		changes.AvatarURL, changes.ClearAvatar,
	)
}

func (r *ProfileRepo) List(ctx context.Context, skip, limit int) ([]domain.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles ORDER BY id OFFSET $1 LIMIT $2"
	return r.listProfiles(ctx, query, skip, limit)
}

// SearchByName matches case-insensitive substrings, AND-combined when both
// filters are set. Pagination happens in the query, not in memory.
func (r *ProfileRepo) SearchByName(ctx context.Context, firstName, lastName string, skip, limit int) ([]domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE ($1 = '' OR first_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR last_name ILIKE '%' || $2 || '%')
		ORDER BY id
		OFFSET $3 LIMIT $4`

	return r.listProfiles(ctx, query, firstName, lastName, skip, limit)
}

func (r *ProfileRepo) listProfiles(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.FirstName, &p.LastName,
			&p.Bio, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepo) scanProfile(ctx context.Context, query string, args ...any) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName,
		&p.Bio, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
