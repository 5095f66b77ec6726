package hostaway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/upstream"
)

const fetchTimeout = 20 * time.Second

type Client struct {
	base      string
	accountID string
	key       string
	up        *upstream.Client
}

func New(base, accountID, key string, rps int) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		accountID: accountID,
		key:       key,
		up:        upstream.New("hostaway", fetchTimeout, rps),
	}
}

// Upstream exposes the transport for tests.
func (c *Client) Upstream() *upstream.Client { return c.up }

// FetchLive returns the raw review items of the configured account. Missing credentials,
// a non-200 response, a network failure or a malformed payload all yield an empty slice:
// callers treat "no live data" as a fallback trigger, not an error.
func (c *Client) FetchLive(ctx context.Context) []RawReview {
	if c.key == "" || c.accountID == "" {
		c.up.Observe("reviews")
		log.Debug().Msg("hostaway credentials missing; skipping live fetch")
		return []RawReview{}
	}
	url := fmt.Sprintf("%s/accounts/%s/reviews", c.base, c.accountID)
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+c.key)
	hdr.Set("Content-Type", "application/json")

	var env envelope
	if err := c.up.GetJSON(ctx, "reviews", url, hdr, &env); err != nil {
		log.Warn().Err(err).Str("account", c.accountID).Msg("hostaway live fetch failed")
		return []RawReview{}
	}
	if env.Result == nil {
		return []RawReview{}
	}
	return env.Result
}
