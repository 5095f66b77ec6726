package app

import (
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// Filter holds the optional, AND-combined predicates of a reviews query. Zero values mean
// "not applied".
type Filter struct {
	ListingID string
	Type      string
	Status    string
	MinRating *float64
	// Approved is tri-state: nil leaves approval state unfiltered.
	Approved *bool
	// StartDate and EndDate bound submitted_at inclusively. Unparseable values are ignored.
	StartDate string
	EndDate   string
	// Source is mock|live|auto; empty picks the configured default.
	Source string
}

// Apply returns the reviews matching every predicate, preserving order.
func (f Filter) Apply(in []domain.Review) []domain.Review {
	start, hasStart := parseISO(f.StartDate)
	end, hasEnd := parseISO(f.EndDate)

	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if f.ListingID != "" && r.ListingID != f.ListingID {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.MinRating != nil && (r.RatingOverall == nil || *r.RatingOverall < *f.MinRating) {
			continue
		}
		if f.Approved != nil && r.Approved != *f.Approved {
			continue
		}
		if hasStart || hasEnd {
			ts, ok := parseISO(r.SubmittedAt)
			if !ok {
				continue
			}
			if hasStart && ts.Before(start) {
				continue
			}
			if hasEnd && ts.After(end) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO accepts ISO-8601 timestamps with a trailing Z or numeric offset, naive
// timestamps (read as UTC) and bare dates (midnight UTC).
func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
