package domain

// Channel is the upstream platform a review came from.
type Channel string

const (
	ChannelHostaway Channel = "hostaway"
	ChannelGoogle   Channel = "google"
)

// Review types after normalization (raw "guest-to-host" becomes "guest_to_host").
const (
	TypeGuestToHost = "guest_to_host"
	TypeHostToGuest = "host_to_guest"
	TypeUnknown     = "unknown"
)

const StatusUnknown = "unknown"

// Review is the canonical, provider-agnostic review record served to the dashboard.
// It is rebuilt on every request and never persisted.
type Review struct {
	ReviewID        string             `json:"review_id"`
	ListingID       string             `json:"listing_id"`
	ListingName     string             `json:"listing_name"`
	Channel         Channel            `json:"channel"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	RatingOverall   *float64           `json:"rating_overall"`  // 0..10, nil when the source has no rating
	CategoryRatings map[string]float64 `json:"category_ratings"`
	TextPublic      *string            `json:"text_public"`
	SubmittedAt     string             `json:"submitted_at"` // 2006-01-02T15:04:05Z
	AuthorName      *string            `json:"author_name"`
	Approved        bool               `json:"approved"`
}
