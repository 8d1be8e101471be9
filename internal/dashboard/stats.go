package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

const recentQuoteLimit = 5

// StatsDTO is the aggregate the dashboard renders.
type StatsDTO struct {
	QuotesThisMonth int             `json:"quotes_this_month"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ApprovedCount   int             `json:"approved_count"`
	ApprovedValue   decimal.Decimal `json:"approved_value"`
	ApprovalRate    int             `json:"approval_rate"`
	QuotesDelta     string          `json:"quotes_delta"`
	RevenueDelta    string          `json:"revenue_delta"`
	ApprovedDelta   string          `json:"approved_delta"`
	RecentQuotes    []RecentQuote   `json:"recent_quotes"`
}

// RecentQuote is the compact projection shown in the activity feed.
type RecentQuote struct {
	ID         uuid.UUID         `json:"id"`
	ClientName string            `json:"client_name"`
	Amount     string            `json:"amount"`
	Status     enums.QuoteStatus `json:"status"`
	Age        string            `json:"age"`
}

// ComputeStats aggregates the user's full quote list. It is a pure function
// of its inputs; now supplies the wall clock so tests can pin it.
func ComputeStats(records []quotes.StatsRecord, now time.Time) StatsDTO {
	stats := StatsDTO{
		TotalRevenue:  decimal.Zero,
		ApprovedValue: decimal.Zero,
		RecentQuotes:  []RecentQuote{},
	}

	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := previousMonth(curYear, curMonth)

	var (
		curCount, prevCount       int
		curRevenue, prevRevenue   = decimal.Zero, decimal.Zero
		curApproved, prevApproved int
	)

	for _, record := range records {
		stats.TotalRevenue = stats.TotalRevenue.Add(record.Amount)
		approved := record.Status == enums.QuoteStatusApproved
		if approved {
			stats.ApprovedCount++
			stats.ApprovedValue = stats.ApprovedValue.Add(record.Amount)
		}

		// calendar-month bucketing by local wall clock
		y, m := record.CreatedAt.Year(), record.CreatedAt.Month()
		switch {
		case y == curYear && m == curMonth:
			curCount++
			curRevenue = curRevenue.Add(record.Amount)
			if approved {
				curApproved++
			}
		case y == prevYear && m == prevMonth:
			prevCount++
			prevRevenue = prevRevenue.Add(record.Amount)
			if approved {
				prevApproved++
			}
		}
	}

	stats.QuotesThisMonth = curCount
	if total := len(records); total > 0 {
		stats.ApprovalRate = int(math.Round(float64(stats.ApprovedCount) / float64(total) * 100))
	}

	stats.QuotesDelta = percentDelta(float64(curCount), float64(prevCount))
	stats.RevenueDelta = percentDelta(curRevenue.InexactFloat64(), prevRevenue.InexactFloat64())
	stats.ApprovedDelta = percentDelta(float64(curApproved), float64(prevApproved))

	limit := recentQuoteLimit
	if len(records) < limit {
		limit = len(records)
	}
	for _, record := range records[:limit] {
		stats.RecentQuotes = append(stats.RecentQuotes, RecentQuote{
			ID:         record.ID,
			ClientName: record.ClientName,
			Amount:     "$" + record.Amount.StringFixed(2),
			Status:     record.Status,
			Age:        humanizeAge(now.Sub(record.CreatedAt)),
		})
	}

	return stats
}

func previousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// percentDelta reports the month-over-month change. A zero previous
// denominator yields "+100%" when the current value is positive, "+0%"
// otherwise: a zero-division guard, not a true percentage.
func percentDelta(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "+0%"
	}
	pct := int(math.Round((current - previous) / previous * 100))
	return fmt.Sprintf("%+d%%", pct)
}

func humanizeAge(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour")
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed.Hours()/24), "day")
	default:
		return plural(int(elapsed.Hours()/(24*7)), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
