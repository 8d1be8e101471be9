package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
)

type stubStatsSource struct {
	records  []quotes.StatsRecord
	failWith error
	calls    int
}

func (s *stubStatsSource) ListStatsRecords(ctx context.Context, userID uuid.UUID) ([]quotes.StatsRecord, error) {
	s.calls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.records, nil
}

type missingTableError struct{}

func (missingTableError) Error() string { return "ERROR: no such table: quotes" }

func TestSnapshotCacheStaleResolutionDoesNotOverwrite(t *testing.T) {
	cache := NewSnapshotCache(time.Minute)
	userID := uuid.New()
	now := time.Now()

	// Two loads start; the later one resolves first.
	older := cache.Begin()
	newer := cache.Begin()

	fresh := StatsDTO{QuotesThisMonth: 7}
	stale := StatsDTO{QuotesThisMonth: 3}

	require.True(t, cache.Resolve(userID, newer, fresh, now))
	assert.False(t, cache.Resolve(userID, older, stale, now))

	got, ok := cache.Get(userID, now)
	require.True(t, ok)
	assert.Equal(t, 7, got.QuotesThisMonth)
}

func TestSnapshotCacheExpiry(t *testing.T) {
	cache := NewSnapshotCache(time.Minute)
	userID := uuid.New()
	now := time.Now()

	gen := cache.Begin()
	require.True(t, cache.Resolve(userID, gen, StatsDTO{QuotesThisMonth: 2}, now))

	_, ok := cache.Get(userID, now.Add(30*time.Second))
	assert.True(t, ok)

	_, ok = cache.Get(userID, now.Add(2*time.Minute))
	assert.False(t, ok)
}

func TestSnapshotCacheInvalidate(t *testing.T) {
	cache := NewSnapshotCache(time.Minute)
	userID := uuid.New()
	now := time.Now()

	gen := cache.Begin()
	require.True(t, cache.Resolve(userID, gen, StatsDTO{QuotesThisMonth: 2}, now))

	cache.Invalidate(userID)

	_, ok := cache.Get(userID, now)
	assert.False(t, ok)
}

func TestServiceStatsCachesPerUser(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	source := &stubStatsSource{records: []quotes.StatsRecord{
		{
			ID:         uuid.New(),
			ClientName: "Acme Roofing",
			Amount:     decimal.RequireFromString("2193.00"),
			Status:     enums.QuoteStatusApproved,
			CreatedAt:  now.Add(-time.Hour),
		},
	}}

	svc, err := NewService(ServiceParams{
		Source: source,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	first, err := svc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.QuotesThisMonth)
	assert.Equal(t, 1, source.calls)

	second, err := svc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls, "second read should be served from the snapshot")

	svc.Invalidate(userID)

	_, err = svc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestServiceStatsDegradesWhenSchemaAbsent(t *testing.T) {
	source := &stubStatsSource{failWith: missingTableError{}}
	svc, err := NewService(ServiceParams{Source: source})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.QuotesThisMonth)
	assert.Equal(t, "+0%", stats.QuotesDelta)
	assert.NotNil(t, stats.RecentQuotes)
}

func TestServiceStatsRequiresUser(t *testing.T) {
	svc, err := NewService(ServiceParams{Source: &stubStatsSource{}})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
