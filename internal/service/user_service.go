package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vedran77/userhub/internal/auth"
	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDeactivation   = errors.New("cannot deactivate own account")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrPasswordTooShort   = errors.New("new password is too short")
)

// UserService owns the user lifecycle: registration, credential checks and
// mutation. Token issuance lives in AuthService.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

type ProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type RegisterInput struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Profile  *ProfileInput `json:"profile"`
}

type UpdateUserInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register creates a user plus its profile (supplied or empty) and returns
// the hydrated pair. The email pre-check has a race window under concurrent
// registration; the unique constraint closes it and surfaces the same error.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	profile := &domain.Profile{UserID: user.ID}
	if input.Profile != nil {
		profile.FirstName = input.Profile.FirstName
		profile.LastName = input.Profile.LastName
		profile.Bio = input.Profile.Bio
		profile.AvatarURL = input.Profile.AvatarURL
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	return s.userRepo.GetByIDWithProfile(ctx, user.ID)
}

// Authenticate returns the user iff the email exists, the password verifies
// and the account is active. Unknown email and wrong password produce the
// same generic error; a disabled account is reported distinctly, but only
// after the password matched.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmailWithProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

// Update applies a partial update. An email change re-checks uniqueness, a
// password change rehashes.
func (s *UserService) Update(ctx context.Context, userID int64, input UpdateUserInput) (*domain.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	var changes repository.UserChanges

	if input.Email != nil && *input.Email != current.Email {
		existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		changes.Email = input.Email
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		changes.PasswordHash = &hash
	}

	updated, err := s.userRepo.Update(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	return s.userRepo.GetByIDWithProfile(ctx, userID)
}

// Deactivate flips the active flag off. Self-deactivation is forbidden.
func (s *UserService) Deactivate(ctx context.Context, userID, actorID int64) (*domain.User, error) {
	if userID == actorID {
		return nil, ErrSelfDeactivation
	}

	user, err := s.userRepo.Deactivate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// ChangePassword verifies the old password before delegating to Update.
func (s *UserService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	_, err := s.Update(ctx, user.ID, UpdateUserInput{Password: &newPassword})
	return err
}

func (s *UserService) GetWithProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByIDWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, activeOnly bool, skip, limit int) ([]domain.User, error) {
	if activeOnly {
		return s.userRepo.ListActive(ctx, skip, limit)
	}
	return s.userRepo.ListAll(ctx, skip, limit)
}
