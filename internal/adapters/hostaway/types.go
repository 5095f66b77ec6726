package hostaway

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RawReview is one item of the Hostaway reviews payload, as returned by
// GET /accounts/{accountId}/reviews and as stored in the bundled dataset.
type RawReview struct {
	ID             ID            `json:"id"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	Rating         *float64      `json:"rating"`
	PublicReview   *string       `json:"publicReview"`
	ReviewCategory []RawCategory `json:"reviewCategory"`
	SubmittedAt    string        `json:"submittedAt"` // "2006-01-02 15:04:05", naive UTC
	GuestName      string        `json:"guestName"`
	ListingName    string        `json:"listingName"`
}

type RawCategory struct {
	Category string   `json:"category"`
	Rating         *float64      `json:"rating"`
}

type envelope struct {
	Status         string        `json:"status"`
	Result []RawReview `json:"result"`
}

// ID accepts both numeric and string review ids.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}
