package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSearchFilterRequired = errors.New("at least one search filter is required")
	ErrInvalidAvatarURL     = errors.New("avatar url must start with http:// or https://")
)

var profileFields = []string{"first_name", "last_name", "bio", "avatar_url"}

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type CompletionStatus struct {
	CompletionPercentage float64  `json:"completion_percentage"`
	MissingFields        []string `json:"missing_fields"`
	CompletedFields      []string `json:"completed_fields"`
}

// GetOrCreate returns the user's profile, creating an empty one on first use.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &domain.Profile{UserID: userID}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Update merges the provided fields into the profile, creating it first when
// the user has none. Omitted fields stay untouched.
func (s *ProfileService) Update(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &domain.Profile{
			UserID:    userID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Bio:       input.Bio,
			AvatarURL: input.AvatarURL,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("creating profile: %w", err)
		}
		return profile, nil
	}

	return s.profileRepo.Update(ctx, profile.ID, repository.ProfileChanges{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	})
}

// Search requires at least one name filter. Matching is a case-insensitive
// substring test, AND-combined when both filters are set, paginated by the
// store.
func (s *ProfileService) Search(ctx context.Context, firstName, lastName string, skip, limit int) ([]domain.Profile, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" && lastName == "" {
		return nil, ErrSearchFilterRequired
	}

	return s.profileRepo.SearchByName(ctx, firstName, lastName, skip, limit)
}

func (s *ProfileService) List(ctx context.Context, skip, limit int) ([]domain.Profile, error) {
	return s.profileRepo.List(ctx, skip, limit)
}

// CompletionStatus reports how many of the four optional fields are filled.
// A missing profile counts as fully incomplete rather than an error.
func (s *ProfileService) CompletionStatus(ctx context.Context, userID int64) (*CompletionStatus, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &CompletionStatus{
		MissingFields:   []string{},
		CompletedFields: []string{},
	}

	if profile == nil {
		status.MissingFields = append(status.MissingFields, profileFields...)
		return status, nil
	}

	values := map[string]*string{
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"bio":        profile.Bio,
		"avatar_url": profile.AvatarURL,
	}

	for _, field := range profileFields {
		if v := values[field]; v != nil && strings.TrimSpace(*v) != "" {
			status.CompletedFields = append(status.CompletedFields, field)
		} else {
			status.MissingFields = append(status.MissingFields, field)
		}
	}

	pct := float64(len(status.CompletedFields)) / float64(len(profileFields)) * 100
	status.CompletionPercentage = math.Round(pct*100) / 100

	return status, nil
}

// UpdateAvatar sets the avatar URL, creating the profile if needed.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (*domain.Profile, error) {
	if !strings.HasPrefix(avatarURL, "http://") && !strings.HasPrefix(avatarURL, "https://") {
		return nil, ErrInvalidAvatarURL
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.profileRepo.Update(ctx, profile.ID, repository.ProfileChanges{AvatarURL: &avatarURL})
}

// DeleteAvatar clears the avatar URL. Unlike UpdateAvatar it does not create
// a missing profile.
func (s *ProfileService) DeleteAvatar(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return s.profileRepo.Update(ctx, profile.ID, repository.ProfileChanges{ClearAvatar: true})
}
