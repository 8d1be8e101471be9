package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

// Service exposes the settings operations the API surface depends on.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateProfileDTO) (ProfileDTO, error)
}

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// userDirectory resolves account fields used to seed a fresh profile.
type userDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo profileRepository
	// Users seeds name and email into lazily created rows; optional.
	Users userDirectory
	// ProvisioningGrace simulates write success while the profiles table
	// is still being provisioned.
	ProvisioningGrace bool
	Logger            *logger.Logger
}

type service struct {
	repo  profileRepository
	users userDirectory
	grace bool
	logg  *logger.Logger
}

// NewService builds a settings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	return &service{
		repo:  params.Repo,
		users: params.Users,
		grace: params.ProvisioningGrace,
		logg:  params.Logger,
	}, nil
}

// Get returns the user's profile, creating it with defaults on first read.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	profile, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		classified := pkgdb.Classify(err, "load profile")
		if pkgdb.IsSchemaAbsent(classified) {
			s.logDegrade(ctx)
			return fromModel(s.defaultProfile(ctx, userID)), nil
		}
		return ProfileDTO{}, classified
	}
	return fromModel(profile), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileDTO) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	profile, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		classified := pkgdb.Classify(err, "load profile")
		if pkgdb.IsSchemaAbsent(classified) && s.grace {
			simulated := s.defaultProfile(ctx, userID)
			applyUpdate(simulated, req)
			if s.logg != nil {
				s.logg.Warn(ctx, "profiles table absent; returning simulated update")
			}
			return fromModel(simulated), nil
		}
		return ProfileDTO{}, classified
	}

	applyUpdate(profile, req)

	saved, err := s.repo.Save(ctx, profile)
	if err != nil {
		return ProfileDTO{}, pkgdb.Classify(err, "update profile")
	}
	return fromModel(saved), nil
}

// loadOrCreate reads the row, inserting the defaults when it does not exist
// yet. A concurrent first read can race the insert; the loser re-reads.
func (s *service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !pkgdb.IsNotFound(pkgdb.Classify(err, "load profile")) {
		return nil, err
	}

	created, createErr := s.repo.Create(ctx, s.defaultProfile(ctx, userID))
	if createErr != nil {
		if pkgdb.IsUniqueViolation(pkgdb.Classify(createErr, "create profile")) {
			return s.repo.FindByUserID(ctx, userID)
		}
		return nil, createErr
	}
	return created, nil
}

func (s *service) defaultProfile(ctx context.Context, userID uuid.UUID) *models.Profile {
	profile := &models.Profile{
		ID:                   userID,
		NotificationsEnabled: true,
		EmailNotifications:   true,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}
	if s.users != nil {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			profile.FullName = user.FullName
			profile.Email = user.Email
		}
	}
	return profile
}

func applyUpdate(profile *models.Profile, req UpdateProfileDTO) {
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.State != nil {
		profile.State = *req.State
	}
	if req.BillingAddress != nil {
		profile.BillingAddress = *req.BillingAddress
	}
	if req.BillingCity != nil {
		profile.BillingCity = *req.BillingCity
	}
	if req.BillingState != nil {
		profile.BillingState = *req.BillingState
	}
	if req.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.EmailNotifications != nil {
		profile.EmailNotifications = *req.EmailNotifications
	}
}

func (s *service) logDegrade(ctx context.Context) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "table", "profiles"), "schema absent; degrading to defaults")
}
