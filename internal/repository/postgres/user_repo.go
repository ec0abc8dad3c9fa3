package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

const userColumns = "id, email, password_hash, is_active, is_superuser, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, is_active, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.IsActive, user.IsSuperuser,
	).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByIDWithProfile(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUserWithProfile(ctx, "u.id = $1", id)
}

func (r *UserRepo) GetByEmailWithProfile(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUserWithProfile(ctx, "u.email = $1", email)
}

// Update touches only the provided fields; nil pointers keep the stored value.
// Returns (nil, nil) when the id does not exist.
func (r *UserRepo) Update(ctx context.Context, id int64, changes repository.UserChanges) (*domain.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
		    password_hash = COALESCE($3, password_hash),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := r.scanUser(ctx, query, id, changes.Email, changes.PasswordHash)
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicateEmail
	}
	return user, err
}

func (r *UserRepo) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.scanUser(ctx, query, id)
}

func (r *UserRepo) ListActive(ctx context.Context, skip, limit int) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE is_active ORDER BY id OFFSET $1 LIMIT $2"
	return r.listUsers(ctx, query, skip, limit)
}

func (r *UserRepo) ListAll(ctx context.Context, skip, limit int) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id OFFSET $1 LIMIT $2"
	return r.listUsers(ctx, query, skip, limit)
}

func (r *UserRepo) listUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.IsActive,
			&u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsActive,
		&u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// scanUserWithProfile hydrates the user and its optional profile in one read.
func (r *UserRepo) scanUserWithProfile(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.is_active, u.is_superuser, u.created_at, u.updated_at,
		       p.id, p.user_id, p.first_name, p.last_name, p.bio, p.avatar_url, p.created_at, p.updated_at
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE ` + where

	var (
		u          domain.User
		p          domain.Profile
		pID        *int64
		pUserID    *int64
		pCreatedAt *time.Time
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsActive,
		&u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
		&pID, &pUserID, &p.FirstName, &p.LastName,
		&p.Bio, &p.AvatarURL, &pCreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if pID != nil {
		p.ID = *pID
		p.UserID = *pUserID
		if pCreatedAt != nil {
			p.CreatedAt = *pCreatedAt
		}
		u.Profile = &p
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
