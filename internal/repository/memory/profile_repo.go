package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

type ProfileRepo struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]domain.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{
		nextID:   1,
		profiles: make(map[int64]domain.Profile),
	}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.ID = r.nextID
	r.nextID++
	profile.CreatedAt = time.Now()
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.profiles[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProfileRepo) Update(ctx context.Context, id int64, changes repository.ProfileChanges) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}

	if changes.FirstName != nil {
		p.FirstName = changes.FirstName
	}
	if changes.LastName != nil {
		p.LastName = changes.LastName
	}
	if changes.Bio != nil {
		p.Bio = changes.Bio
	}
	if changes.ClearAvatar {
		p.AvatarURL = nil
	} else if changes.AvatarURL != nil {
		p.AvatarURL = changes.AvatarURL
	}

	now := time.Now()
	p.UpdatedAt = &now
	r.profiles[id] = p
	return &p, nil
}

func (r *ProfileRepo) List(ctx context.Context, skip, limit int) ([]domain.Profile, error) {
	return r.list(func(p domain.Profile) bool { return true }, skip, limit), nil
}

func (r *ProfileRepo) SearchByName(ctx context.Context, firstName, lastName string, skip, limit int) ([]domain.Profile, error) {
	match := func(p domain.Profile) bool {
		if firstName != "" && !containsFold(p.FirstName, firstName) {
			return false
		}
		if lastName != "" && !containsFold(p.LastName, lastName) {
			return false
		}
		return true
	}
	return r.list(match, skip, limit), nil
}

func (r *ProfileRepo) list(keep func(domain.Profile) bool, skip, limit int) []domain.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()

	var profiles []domain.Profile
	for _, p := range r.profiles {
		if keep(p) {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })

	return paginate(profiles, skip, limit)
}

func containsFold(field *string, sub string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), strings.ToLower(sub))
}
