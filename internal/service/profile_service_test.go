package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedran77/userhub/internal/repository/memory"
)

func str(s string) *string { return &s }

func TestProfileService_GetOrCreate_Idempotent(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	created, err := svc.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)

	again, err := svc.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestProfileService_Update_CreatesWhenMissing(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	profile, err := svc.Update(context.Background(), 1, UpdateProfileInput{FirstName: str("Ana")})
	require.NoError(t, err)
	require.NotNil(t, profile.FirstName)
	assert.Equal(t, "Ana", *profile.FirstName)
}

func TestProfileService_Update_PartialMerge(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	_, err := svc.Update(context.Background(), 1, UpdateProfileInput{
		FirstName: str("Ana"),
		Bio:       str("hello"),
	})
	require.NoError(t, err)

	// Only last_name supplied: other fields stay untouched.
	profile, err := svc.Update(context.Background(), 1, UpdateProfileInput{LastName: str("Kovac")})
	require.NoError(t, err)
	require.NotNil(t, profile.FirstName)
	assert.Equal(t, "Ana", *profile.FirstName)
	require.NotNil(t, profile.LastName)
	assert.Equal(t, "Kovac", *profile.LastName)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "hello", *profile.Bio)
}

func TestProfileService_Update_EmptyChangeSet(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	before, err := svc.Update(context.Background(), 1, UpdateProfileInput{FirstName: str("Ana")})
	require.NoError(t, err)

	after, err := svc.Update(context.Background(), 1, UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.FirstName, after.FirstName)
	assert.Equal(t, before.LastName, after.LastName)
	assert.Equal(t, before.Bio, after.Bio)
	assert.Equal(t, before.AvatarURL, after.AvatarURL)
}

func TestProfileService_Search(t *testing.T) {
	t.Parallel()

	repo := memory.NewProfileRepo()
	svc := NewProfileService(repo)

	seed := []struct {
		userID int64
		first  string
		last   string
	}{
		{1, "Ana", "Kovac"},
		{2, "Anabela", "Horvat"},
		{3, "Marko", "Kovacevic"},
	}
	for _, s := range seed {
		_, err := svc.Update(context.Background(), s.userID, UpdateProfileInput{
			FirstName: str(s.first),
			LastName:  str(s.last),
		})
		require.NoError(t, err)
	}

	_, err := svc.Search(context.Background(), "", "", 0, 100)
	assert.ErrorIs(t, err, ErrSearchFilterRequired)

	_, err = svc.Search(context.Background(), "   ", "", 0, 100)
	assert.ErrorIs(t, err, ErrSearchFilterRequired)

	// Case-insensitive substring match.
	results, err := svc.Search(context.Background(), "ana", "", 0, 100)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// AND-combined when both filters are set.
	results, err = svc.Search(context.Background(), "ana", "horvat", 0, 100)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].UserID)

	// Pagination at the query level.
	results, err = svc.Search(context.Background(), "", "kovac", 1, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(3), results[0].UserID)
}

func TestProfileService_CompletionStatus(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	// No profile yet: fully incomplete, not an error.
	status, err := svc.CompletionStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, status.CompletionPercentage)
	assert.Len(t, status.MissingFields, 4)
	assert.Empty(t, status.CompletedFields)

	_, err = svc.Update(context.Background(), 1, UpdateProfileInput{
		FirstName: str("Ana"),
		Bio:       str("   "), // whitespace-only counts as missing
	})
	require.NoError(t, err)

	status, err = svc.CompletionStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, status.CompletionPercentage)
	assert.Equal(t, []string{"first_name"}, status.CompletedFields)
	assert.Equal(t, []string{"last_name", "bio", "avatar_url"}, status.MissingFields)

	_, err = svc.Update(context.Background(), 1, UpdateProfileInput{
		LastName: str("Kovac"),
		Bio:      str("hi"),
	})
	require.NoError(t, err)

	status, err = svc.CompletionStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 75.0, status.CompletionPercentage)
}

func TestProfileService_UpdateAvatar(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	_, err := svc.UpdateAvatar(context.Background(), 1, "ftp://example.com/a.png")
	assert.ErrorIs(t, err, ErrInvalidAvatarURL)

	_, err = svc.UpdateAvatar(context.Background(), 1, "example.com/a.png")
	assert.ErrorIs(t, err, ErrInvalidAvatarURL)

	profile, err := svc.UpdateAvatar(context.Background(), 1, "https://example.com/a.png")
	require.NoError(t, err)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *profile.AvatarURL)
}

func TestProfileService_DeleteAvatar(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewProfileRepo())

	_, err := svc.DeleteAvatar(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.UpdateAvatar(context.Background(), 1, "https://example.com/a.png")
	require.NoError(t, err)

	profile, err := svc.DeleteAvatar(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, profile.AvatarURL)
}

func TestProfileService_GetByID(t *testing.T) {
	t.Parallel()

	repo := memory.NewProfileRepo()
	svc := NewProfileService(repo)

	created, err := svc.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)

	profile, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.UserID)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
