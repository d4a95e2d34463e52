package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetCreatesEmptyProfile(t *testing.T) {
	store, users := newStoreBackedRepo()
	svc := services.NewProfileService(store, users)
	ctx := context.Background()

	user, err := store.InsertUser(ctx, "ann@example.com", "hash", models.RoleMentee)
	require.NoError(t, err)

	view, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.Profile.UserID)
	assert.Equal(t, "", view.Profile.Name)
	assert.Equal(t, []string{}, view.Profile.Skills)
	assert.Equal(t, "ann@example.com", view.User.Email)
	assert.Equal(t, models.RoleMentee, view.User.Role)

	// Second read returns the same profile
	again, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Profile.UpdatedAt, again.Profile.UpdatedAt)
}

func TestProfileService_GetUnknownUser(t *testing.T) {
	store, users := newStoreBackedRepo()
	svc := services.NewProfileService(store, users)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestProfileService_Lifecycle(t *testing.T) {
	store, users := newStoreBackedRepo()
	svc := services.NewProfileService(store, users)
	ctx := context.Background()

	user, err := store.InsertUser(ctx, "ann@example.com", "hash", models.RoleMentor)
	require.NoError(t, err)

	_, err = svc.Update(ctx, user.ID, &models.UpdateProfileRequest{Name: "Ann"})
	assert.ErrorIs(t, err, services.ErrProfileNotFound)

	created, err := svc.Create(ctx, user.ID, &models.CreateProfileRequest{
		Name: "Ann", Bio: "Backend engineer", Skills: []string{" go ", "", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, created.Skills)

	_, err = svc.Create(ctx, user.ID, &models.CreateProfileRequest{Name: "Ann", Bio: "again"})
	assert.ErrorIs(t, err, services.ErrProfileExists)

	updated, err := svc.Update(ctx, user.ID, &models.UpdateProfileRequest{Name: "Ann K", Goals: "mentor two people"})
	require.NoError(t, err)
	assert.Equal(t, "Ann K", updated.Name)
	assert.Equal(t, "", updated.Bio)
	assert.Equal(t, "mentor two people", updated.Goals)

	deleted, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann K", deleted.Name)

	_, err = svc.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrProfileNotFound)
}
