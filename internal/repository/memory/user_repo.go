// Package memory provides map-backed repositories with the same contracts as
// the postgres implementations. They back the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User

	// Profiles is optional; when set, the WithProfile getters hydrate from it.
	Profiles *ProfileRepo
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID: 1,
		users:  make(map[int64]domain.User),
	}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// SetSuperuser flips the superuser flag. There is no API surface for this;
// it mirrors provisioning the flag directly in the database.
func (r *UserRepo) SetSuperuser(id int64, superuser bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.IsSuperuser = superuser
		r.users[id] = u
	}
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByIDWithProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.GetByID(ctx, id)
	if user == nil || err != nil {
		return nil, err
	}
	return r.hydrate(ctx, user)
}

func (r *UserRepo) GetByEmailWithProfile(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if user == nil || err != nil {
		return nil, err
	}
	return r.hydrate(ctx, user)
}

func (r *UserRepo) Update(ctx context.Context, id int64, changes repository.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	if changes.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *changes.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *changes.Email
	}
	if changes.PasswordHash != nil {
		u.PasswordHash = *changes.PasswordHash
	}

	now := time.Now()
	u.UpdatedAt = &now
	r.users[id] = u
	return &u, nil
}

func (r *UserRepo) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	u.IsActive = false
	now := time.Now()
	u.UpdatedAt = &now
	r.users[id] = u
	return &u, nil
}

func (r *UserRepo) ListActive(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return r.list(func(u domain.User) bool { return u.IsActive }, skip, limit), nil
}

func (r *UserRepo) ListAll(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return r.list(func(u domain.User) bool { return true }, skip, limit), nil
}

func (r *UserRepo) list(keep func(domain.User) bool, skip, limit int) []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []domain.User
	for _, u := range r.users {
		if keep(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return paginate(users, skip, limit)
}

func (r *UserRepo) hydrate(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r.Profiles == nil {
		return user, nil
	}
	profile, err := r.Profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
