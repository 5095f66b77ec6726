package places

// Place is the subset of a Places details result the service consumes.
type Place struct {
	PlaceID          string      `json:"place_id,omitempty"`
	Name             string      `json:"name,omitempty"`
	Rating           *float64    `json:"rating,omitempty"`
	UserRatingsTotal int         `json:"user_ratings_total,omitempty"`
	Reviews          []RawReview `json:"reviews,omitempty"`
}

func (p Place) IsZero() bool {
	return p.PlaceID == "" && p.Name == "" && p.Rating == nil && len(p.Reviews) == 0
}

// RawReview is one entry of Place.Reviews. Rating is on a 0..5 scale; Time is unix seconds.
type RawReview struct {
	AuthorName   string        `json:"author_name,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	Time         *int64        `json:"time,omitempty"`
	Text         string        `json:"text,omitempty"`
	OriginalText *OriginalText `json:"original_text,omitempty"`
	Language     string        `json:"language,omitempty"`
}

type OriginalText struct {
	Text string `json:"text"`
}

type candidate struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

type findResponse struct {
	Candidates []candidate `json:"candidates"`
	Status     string      `json:"status"`
}

type detailsResponse struct {
	Result Place  `json:"result"`
	Status string `json:"status"`
}
