package places

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/upstream"
	"flex_reviews/internal/domain"
)

const (
	findTimeout    = 15 * time.Second
	detailsTimeout = 20 * time.Second
)

type Client struct {
	base     string
	key      string
	find     *upstream.Client
	details  *upstream.Client
	cache    domain.Cache // optional
	cacheTTL time.Duration
}

// New builds a Places client. cache may be nil; when set, successful lookups are kept for ttl.
func New(base, key string, rps int, cache domain.Cache, ttl time.Duration) *Client {
	return &Client{
		base:     strings.TrimRight(base, "/"),
		key:      key,
		find:     upstream.New("places", findTimeout, rps),
		details:  upstream.New("places", detailsTimeout, rps),
		cache:    cache,
		cacheTTL: ttl,
	}
}

// Upstreams exposes the transports (find, details) for tests.
func (c *Client) Upstreams() (*upstream.Client, *upstream.Client) { return c.find, c.details }

// FindPlaceID resolves free text to the first candidate's place id. It reports false when
// no key is configured, nothing matched, or the call failed.
func (c *Client) FindPlaceID(ctx context.Context, query string) (string, bool) {
	query = strings.TrimSpace(query)
	if c.key == "" || query == "" {
		c.find.Observe("findplacefromtext")
		return "", false
	}
	key := "places:find:" + strings.ToLower(query)
	var cached string
	if c.cacheGet(ctx, key, &cached) && cached != "" {
		return cached, true
	}

	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id,name")
	q.Set("key", c.key)

	var resp findResponse
	if err := c.find.GetJSON(ctx, "findplacefromtext", c.base+"/findplacefromtext/json?"+q.Encode(), nil, &resp); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("places text search failed")
		return "", false
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].PlaceID == "" {
		log.Debug().Str("query", query).Str("status", resp.Status).Msg("places text search: no candidates")
		return "", false
	}
	id := resp.Candidates[0].PlaceID
	c.cacheSet(ctx, key, id)
	return id, true
}

// FetchPlace loads place details including reviews. It returns the zero Place when no key
// is configured or the call failed.
func (c *Client) FetchPlace(ctx context.Context, placeID string) Place {
	if c.key == "" || placeID == "" {
		c.details.Observe("details")
		return Place{}
	}
	key := "places:details:" + placeID
	var cached Place
	if c.cacheGet(ctx, key, &cached) {
		return cached
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,rating,user_ratings_total,reviews")
	q.Set("key", c.key)

	var resp detailsResponse
	if err := c.details.GetJSON(ctx, "details", c.base+"/details/json?"+q.Encode(), nil, &resp); err != nil {
		log.Warn().Err(err).Str("place_id", placeID).Msg("places details fetch failed")
		return Place{}
	}
	p := resp.Result
	if p.IsZero() {
		log.Debug().Str("place_id", placeID).Str("status", resp.Status).Msg("places details: empty result")
		return Place{}
	}
	// the details call is not asked for place_id; keep review ids stable
	if p.PlaceID == "" {
		p.PlaceID = placeID
	}
	c.cacheSet(ctx, key, p)
	return p
}

func (c *Client) cacheGet(ctx context.Context, key string, dst any) bool {
	if c.cache == nil {
		return false
	}
	ok, err := c.cache.Get(ctx, key, dst)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("places cache read failed")
		return false
	}
	return ok
}

func (c *Client) cacheSet(ctx context.Context, key string, v any) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, v, int(c.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("places cache write failed")
	}
}
