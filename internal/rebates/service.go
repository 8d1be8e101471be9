package rebates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

const (
	unknownProgramMessage = "unknown rebate program"
	notSavedMessage       = "rebate is not saved"
	alreadySavedMessage   = "rebate is already saved"
)

// Service exposes the rebate operations the API surface depends on.
type Service interface {
	Search(query string) []CatalogEntry
	ListSaved(ctx context.Context, userID uuid.UUID) ([]SavedRebateDTO, error)
	Save(ctx context.Context, userID uuid.UUID, rebateID string) (SavedRebateDTO, error)
	Remove(ctx context.Context, userID uuid.UUID, rebateID string) error
	Toggle(ctx context.Context, userID uuid.UUID, rebateID string) (ToggleResultDTO, error)
	IsSaved(ctx context.Context, userID uuid.UUID, rebateID string) (bool, error)
}

type savedRebateRepository interface {
	Create(ctx context.Context, saved *models.SavedRebate) (*models.SavedRebate, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedRebate, error)
	FindByRebateID(ctx context.Context, userID uuid.UUID, rebateID string) (*models.SavedRebate, error)
	DeleteByRebateID(ctx context.Context, userID uuid.UUID, rebateID string) (int64, error)
}

// ServiceParams groups dependencies for the rebates service.
type ServiceParams struct {
	Repo savedRebateRepository
	// ProvisioningGrace simulates write success while the saved_rebates
	// table is still being provisioned.
	ProvisioningGrace bool
	Logger            *logger.Logger
}

type service struct {
	repo  savedRebateRepository
	grace bool
	logg  *logger.Logger
}

// NewService builds a rebates service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("saved rebate repository is required")
	}
	return &service{
		repo:  params.Repo,
		grace: params.ProvisioningGrace,
		logg:  params.Logger,
	}, nil
}

// Search filters the static catalog; it never touches persistence.
func (s *service) Search(query string) []CatalogEntry {
	return Catalog(query)
}

func (s *service) ListSaved(ctx context.Context, userID uuid.UUID) ([]SavedRebateDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	saved, err := s.repo.List(ctx, userID)
	if err != nil {
		classified := pkgdb.Classify(err, "list saved rebates")
		if pkgdb.IsSchemaAbsent(classified) {
			s.logDegrade(ctx)
			return []SavedRebateDTO{}, nil
		}
		return nil, classified
	}

	dtos := make([]SavedRebateDTO, 0, len(saved))
	for i := range saved {
		dtos = append(dtos, fromModel(&saved[i]))
	}
	return dtos, nil
}

// Save bookmarks a catalog program, denormalizing its fields into the row.
// A pre-check keeps the common duplicate path cheap; the unique index is the
// authority when two saves race.
func (s *service) Save(ctx context.Context, userID uuid.UUID, rebateID string) (SavedRebateDTO, error) {
	if userID == uuid.Nil {
		return SavedRebateDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	entry, ok := CatalogEntryByID(rebateID)
	if !ok {
		return SavedRebateDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, unknownProgramMessage)
	}

	existing, err := s.repo.FindByRebateID(ctx, userID, entry.ID)
	if err == nil && existing != nil {
		return SavedRebateDTO{}, pkgerrors.New(pkgerrors.CodeConflict, alreadySavedMessage)
	}

	saved, err := s.repo.Create(ctx, &models.SavedRebate{
		UserID:         userID,
		RebateID:       entry.ID,
		RebateName:     entry.Name,
		RebateProvider: entry.Provider,
		RebateAmount:   entry.IncentiveAmount,
		RebateURL:      entry.WebsiteURL,
	})
	if err != nil {
		classified := pkgdb.Classify(err, "save rebate")
		if pkgdb.IsUniqueViolation(classified) {
			return SavedRebateDTO{}, pkgerrors.New(pkgerrors.CodeConflict, alreadySavedMessage)
		}
		if pkgdb.IsSchemaAbsent(classified) && s.grace {
			return s.simulateSave(ctx, userID, entry), nil
		}
		return SavedRebateDTO{}, classified
	}
	return fromModel(saved), nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, rebateID string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(rebateID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rebate id is required")
	}

	affected, err := s.repo.DeleteByRebateID(ctx, userID, strings.TrimSpace(rebateID))
	if err != nil {
		classified := pkgdb.Classify(err, "remove saved rebate")
		if pkgdb.IsSchemaAbsent(classified) && s.grace {
			return nil
		}
		return classified
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, notSavedMessage)
	}
	return nil
}

// Toggle saves the program if absent, removes it if present, and reports the
// resulting state.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID, rebateID string) (ToggleResultDTO, error) {
	saved, err := s.IsSaved(ctx, userID, rebateID)
	if err != nil {
		return ToggleResultDTO{}, err
	}

	if saved {
		if err := s.Remove(ctx, userID, rebateID); err != nil {
			return ToggleResultDTO{}, err
		}
		return ToggleResultDTO{RebateID: rebateID, Saved: false}, nil
	}

	if _, err := s.Save(ctx, userID, rebateID); err != nil {
		return ToggleResultDTO{}, err
	}
	return ToggleResultDTO{RebateID: rebateID, Saved: true}, nil
}

func (s *service) IsSaved(ctx context.Context, userID uuid.UUID, rebateID string) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, ok := CatalogEntryByID(rebateID); !ok {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, unknownProgramMessage)
	}

	_, err := s.repo.FindByRebateID(ctx, userID, strings.TrimSpace(rebateID))
	if err != nil {
		classified := pkgdb.Classify(err, "check saved rebate")
		if pkgdb.IsNotFound(classified) || pkgdb.IsSchemaAbsent(classified) {
			return false, nil
		}
		return false, classified
	}
	return true, nil
}

func (s *service) simulateSave(ctx context.Context, userID uuid.UUID, entry CatalogEntry) SavedRebateDTO {
	now := time.Now().UTC()
	if s.logg != nil {
		s.logg.Warn(ctx, "saved_rebates table absent; returning simulated save")
	}
	return SavedRebateDTO{
		ID:             uuid.New(),
		RebateID:       entry.ID,
		RebateName:     entry.Name,
		RebateProvider: entry.Provider,
		RebateAmount:   entry.IncentiveAmount,
		RebateURL:      entry.WebsiteURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *service) logDegrade(ctx context.Context) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "table", "saved_rebates"), "schema absent; degrading to empty result")
}
