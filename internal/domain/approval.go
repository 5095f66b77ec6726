package domain

import "time"

// Approval is a manager's persisted decision to surface a review publicly.
type Approval struct {
	ReviewID  string    `json:"review_id"`
	Approved  bool      `json:"approved"`
	Channel   string    `json:"channel"`
	ListingID *string   `json:"listing_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApprovalMap is a review_id -> approved snapshot used to enrich normalization passes.
type ApprovalMap map[string]bool
