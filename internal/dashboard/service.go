package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

const snapshotTTL = 30 * time.Second

// Service aggregates a user's quotes into the dashboard view.
type Service interface {
	Stats(ctx context.Context, userID uuid.UUID) (StatsDTO, error)
	Invalidate(userID uuid.UUID)
}

type statsSource interface {
	ListStatsRecords(ctx context.Context, userID uuid.UUID) ([]quotes.StatsRecord, error)
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	Source statsSource
	Logger *logger.Logger
	// Now supplies the wall clock; defaults to time.Now.
	Now func() time.Time
}

type service struct {
	source statsSource
	cache  *SnapshotCache
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("stats source is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		source: params.Source,
		cache:  NewSnapshotCache(snapshotTTL),
		logg:   params.Logger,
		now:    now,
	}, nil
}

// Stats returns the aggregate dashboard view, served from the per-user
// snapshot cache when fresh. Concurrent loads for the same user are ordered
// by generation so a slow stale load cannot clobber a newer one.
func (s *service) Stats(ctx context.Context, userID uuid.UUID) (StatsDTO, error) {
	if userID == uuid.Nil {
		return StatsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	now := s.now()
	if cached, ok := s.cache.Get(userID, now); ok {
		return cached, nil
	}

	generation := s.cache.Begin()

	records, err := s.source.ListStatsRecords(ctx, userID)
	if err != nil {
		classified := pkgdb.Classify(err, "load dashboard stats")
		if pkgdb.IsSchemaAbsent(classified) {
			// Unprovisioned schema degrades to zero-valued stats.
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "table", "quotes"), "schema absent; degrading to empty stats")
			}
			return ComputeStats(nil, now), nil
		}
		return StatsDTO{}, classified
	}

	stats := ComputeStats(records, now)
	s.cache.Resolve(userID, generation, stats, now)
	return stats, nil
}

// Invalidate drops the user's cached snapshot. Callers invoke it after any
// quote mutation so the next dashboard read recomputes.
func (s *service) Invalidate(userID uuid.UUID) {
	s.cache.Invalidate(userID)
}
