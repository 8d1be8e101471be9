package enums

import (
	"fmt"
	"strings"
)

// QuoteStatus tracks where a quote sits in the contractor's pipeline.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "Pending"
	QuoteStatusSent     QuoteStatus = "Sent"
	QuoteStatusApproved QuoteStatus = "Approved"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusSent,
	QuoteStatusApproved,
	QuoteStatusRejected,
}

// String returns the literal string for the status.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus. Matching is
// case-insensitive so clients may send "sent" or "Sent".
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if strings.EqualFold(string(candidate), strings.TrimSpace(value)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
