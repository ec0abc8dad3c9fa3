package repository

import (
	"context"
	"errors"

	"github.com/vedran77/userhub/internal/domain"
)

// ErrDuplicateEmail is returned by Create and Update when the email unique
// constraint fires. The services pre-check uniqueness, but the constraint is
// the authoritative backstop under concurrent registration.
var ErrDuplicateEmail = errors.New("email already exists")

// UserChanges is a partial update: nil fields are left untouched.
type UserChanges struct {
	Email        *string
	PasswordHash *string
}

// ProfileChanges is a partial update: nil fields are left untouched.
// ClearAvatar nulls out the avatar URL, which a nil pointer cannot express.
type ProfileChanges struct {
	FirstName   *string
	LastName    *string
	Bio         *string
	AvatarURL   *string
	ClearAvatar bool
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDWithProfile(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailWithProfile(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) (*domain.User, error)
	ListActive(ctx context.Context, skip, limit int) ([]domain.User, error)
	ListAll(ctx context.Context, skip, limit int) ([]domain.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, id int64, changes ProfileChanges) (*domain.Profile, error)
	List(ctx context.Context, skip, limit int) ([]domain.Profile, error)
	SearchByName(ctx context.Context, firstName, lastName string, skip, limit int) ([]domain.Profile, error)
}
