package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

func statsRecord(clientName string, amount string, status enums.QuoteStatus, createdAt time.Time) quotes.StatsRecord {
	return quotes.StatsRecord{
		ID:         uuid.New(),
		ClientName: clientName,
		Amount:     decimal.RequireFromString(amount),
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	stats := ComputeStats(nil, now)

	assert.Equal(t, 0, stats.QuotesThisMonth)
	assert.Equal(t, 0, stats.ApprovalRate)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.ApprovedValue.IsZero())
	assert.Equal(t, "+0%", stats.QuotesDelta)
	assert.Equal(t, "+0%", stats.RevenueDelta)
	assert.Equal(t, "+0%", stats.ApprovedDelta)
	assert.Empty(t, stats.RecentQuotes)
	assert.NotNil(t, stats.RecentQuotes)
}

func TestComputeStatsAllCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	records := []quotes.StatsRecord{
		statsRecord("Acme Roofing", "2193.00", enums.QuoteStatusApproved, now.Add(-2*time.Hour)),
		statsRecord("Birch Homes", "1500.00", enums.QuoteStatusPending, now.Add(-26*time.Hour)),
	}

	stats := ComputeStats(records, now)

	assert.Equal(t, 2, stats.QuotesThisMonth)
	assert.Equal(t, "3693", stats.TotalRevenue.String())
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.Equal(t, "2193", stats.ApprovedValue.String())
	assert.Equal(t, 50, stats.ApprovalRate)
	// no prior-month quotes: positive current counts read as +100%
	assert.Equal(t, "+100%", stats.QuotesDelta)
	assert.Equal(t, "+100%", stats.RevenueDelta)
	assert.Equal(t, "+100%", stats.ApprovedDelta)
}

func TestComputeStatsMonthOverMonth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)

	records := []quotes.StatsRecord{
		statsRecord("A", "100.00", enums.QuoteStatusPending, now.Add(-time.Hour)),
		statsRecord("B", "100.00", enums.QuoteStatusPending, now.Add(-2*time.Hour)),
		statsRecord("C", "100.00", enums.QuoteStatusPending, now.Add(-3*time.Hour)),
		statsRecord("D", "100.00", enums.QuoteStatusApproved, now.Add(-4*time.Hour)),
		statsRecord("E", "50.00", enums.QuoteStatusPending, lastMonth),
		statsRecord("F", "50.00", enums.QuoteStatusPending, lastMonth.Add(time.Hour)),
	}

	stats := ComputeStats(records, now)

	assert.Equal(t, 4, stats.QuotesThisMonth)
	// 4 quotes this month against 2 last month is a +100% swing
	assert.Equal(t, "+100%", stats.QuotesDelta)
	// 400 revenue against 100 is +300%
	assert.Equal(t, "+300%", stats.RevenueDelta)
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.Equal(t, 17, stats.ApprovalRate) // round(1/6*100)
}

func TestComputeStatsNegativeDelta(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)

	records := []quotes.StatsRecord{
		statsRecord("A", "100.00", enums.QuoteStatusPending, now.Add(-time.Hour)),
		statsRecord("B", "100.00", enums.QuoteStatusPending, lastMonth),
		statsRecord("C", "100.00", enums.QuoteStatusPending, lastMonth.Add(time.Hour)),
		statsRecord("D", "100.00", enums.QuoteStatusPending, lastMonth.Add(2*time.Hour)),
		statsRecord("E", "100.00", enums.QuoteStatusPending, lastMonth.Add(3*time.Hour)),
	}

	stats := ComputeStats(records, now)

	assert.Equal(t, "-75%", stats.QuotesDelta)
}

func TestComputeStatsJanuaryComparesToPriorDecember(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	december := time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)

	records := []quotes.StatsRecord{
		statsRecord("A", "200.00", enums.QuoteStatusPending, now.Add(-time.Hour)),
		statsRecord("B", "100.00", enums.QuoteStatusPending, december),
		statsRecord("C", "100.00", enums.QuoteStatusPending, december.Add(time.Hour)),
	}

	stats := ComputeStats(records, now)

	assert.Equal(t, 1, stats.QuotesThisMonth)
	assert.Equal(t, "-50%", stats.QuotesDelta)
	assert.Equal(t, "+0%", stats.RevenueDelta)
}

func TestComputeStatsRecentQuotes(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	records := []quotes.StatsRecord{
		statsRecord("Fresh", "2193.00", enums.QuoteStatusPending, now.Add(-30*time.Second)),
		statsRecord("Minutes", "10.00", enums.QuoteStatusPending, now.Add(-5*time.Minute)),
		statsRecord("Hours", "10.00", enums.QuoteStatusPending, now.Add(-3*time.Hour)),
		statsRecord("Days", "10.00", enums.QuoteStatusPending, now.Add(-49*time.Hour)),
		statsRecord("Weeks", "10.00", enums.QuoteStatusPending, now.Add(-15*24*time.Hour)),
		statsRecord("Overflow", "10.00", enums.QuoteStatusPending, now.Add(-30*24*time.Hour)),
	}

	stats := ComputeStats(records, now)

	require.Len(t, stats.RecentQuotes, 5)
	assert.Equal(t, "Fresh", stats.RecentQuotes[0].ClientName)
	assert.Equal(t, "$2193.00", stats.RecentQuotes[0].Amount)
	assert.Equal(t, "just now", stats.RecentQuotes[0].Age)
	assert.Equal(t, "5 minutes ago", stats.RecentQuotes[1].Age)
	assert.Equal(t, "3 hours ago", stats.RecentQuotes[2].Age)
	assert.Equal(t, "2 days ago", stats.RecentQuotes[3].Age)
	assert.Equal(t, "2 weeks ago", stats.RecentQuotes[4].Age)
}

func TestHumanizeAgeSingular(t *testing.T) {
	assert.Equal(t, "1 minute ago", humanizeAge(90*time.Second))
	assert.Equal(t, "1 hour ago", humanizeAge(time.Hour+time.Minute))
	assert.Equal(t, "1 day ago", humanizeAge(25*time.Hour))
	assert.Equal(t, "1 week ago", humanizeAge(8*24*time.Hour))
}
