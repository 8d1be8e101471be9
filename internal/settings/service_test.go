package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
)

type missingTableError struct{}

func (missingTableError) Error() string { return "ERROR: no such table: profiles" }

type uniqueViolationError struct{}

func (uniqueViolationError) Error() string { return "UNIQUE constraint failed: profiles.id" }

type stubProfileRepo struct {
	profiles       map[uuid.UUID]*models.Profile
	failWith       error
	createFailWith error
	missNextFind   bool
	creates        int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (r *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.missNextFind {
		r.missNextFind = false
		return nil, gorm.ErrRecordNotFound
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *stubProfileRepo) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.createFailWith != nil {
		return nil, r.createFailWith
	}
	r.creates++
	r.profiles[profile.ID] = profile
	return profile, nil
}

func (r *stubProfileRepo) Save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.profiles[profile.ID] = profile
	return profile, nil
}

type stubUserDirectory struct {
	users map[uuid.UUID]*models.User
}

func (d *stubUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestService(t *testing.T, repo *stubProfileRepo, users userDirectory, grace bool) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{Repo: repo, Users: users, ProvisioningGrace: grace})
	require.NoError(t, err)
	return svc
}

func TestGetCreatesProfileOnFirstRead(t *testing.T) {
	repo := newStubProfileRepo()
	userID := uuid.New()
	users := &stubUserDirectory{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, FullName: "Jordan Wells", Email: "jordan@example.com"},
	}}
	svc := newTestService(t, repo, users, false)
	ctx := context.Background()

	profile, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "Jordan Wells", profile.FullName)
	assert.Equal(t, "jordan@example.com", profile.Email)
	assert.True(t, profile.NotificationsEnabled)
	assert.True(t, profile.EmailNotifications)
	assert.Equal(t, 1, repo.creates)

	// a second read serves the existing row
	_, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
}

func TestGetServesWinnerRowWhenFirstInsertLosesRace(t *testing.T) {
	repo := newStubProfileRepo()
	userID := uuid.New()
	// The winner's row is already in place, but this reader's initial lookup
	// ran before it committed, so its insert hits the primary key.
	repo.profiles[userID] = &models.Profile{
		ID:                   userID,
		FullName:             "Jordan Wells",
		Email:                "jordan@example.com",
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
	repo.missNextFind = true
	repo.createFailWith = uniqueViolationError{}
	svc := newTestService(t, repo, nil, false)

	profile, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Wells", profile.FullName)
	assert.Equal(t, "jordan@example.com", profile.Email)
	assert.Equal(t, 0, repo.creates)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newStubProfileRepo()
	userID := uuid.New()
	repo.profiles[userID] = &models.Profile{
		ID:                   userID,
		FullName:             "Jordan Wells",
		Email:                "jordan@example.com",
		City:                 "Toronto",
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
	svc := newTestService(t, repo, nil, false)

	city := "Ottawa"
	emailNotifications := false
	updated, err := svc.Update(context.Background(), userID, UpdateProfileDTO{
		City:               &city,
		EmailNotifications: &emailNotifications,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ottawa", updated.City)
	assert.False(t, updated.EmailNotifications)
	assert.Equal(t, "Jordan Wells", updated.FullName)
	assert.True(t, updated.NotificationsEnabled)
}

func TestUpdateLazilyCreatesMissingRow(t *testing.T) {
	repo := newStubProfileRepo()
	svc := newTestService(t, repo, nil, false)
	userID := uuid.New()

	phone := "416-555-0199"
	updated, err := svc.Update(context.Background(), userID, UpdateProfileDTO{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "416-555-0199", updated.Phone)
	assert.Equal(t, 1, repo.creates)
}

func TestGetDegradesToDefaultsWhenSchemaAbsent(t *testing.T) {
	repo := newStubProfileRepo()
	repo.failWith = missingTableError{}
	svc := newTestService(t, repo, nil, false)
	userID := uuid.New()

	profile, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.True(t, profile.NotificationsEnabled)
	assert.True(t, profile.EmailNotifications)
}

func TestUpdateSchemaAbsentWithGraceSimulatesSuccess(t *testing.T) {
	repo := newStubProfileRepo()
	repo.failWith = missingTableError{}
	svc := newTestService(t, repo, nil, true)

	name := "Jordan Wells"
	updated, err := svc.Update(context.Background(), uuid.New(), UpdateProfileDTO{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jordan Wells", updated.FullName)
}

func TestUpdateSchemaAbsentWithoutGraceFails(t *testing.T) {
	repo := newStubProfileRepo()
	repo.failWith = missingTableError{}
	svc := newTestService(t, repo, nil, false)

	name := "Jordan Wells"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateProfileDTO{FullName: &name})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeSchemaAbsent))
}
