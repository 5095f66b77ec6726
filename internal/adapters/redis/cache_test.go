package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "flex_reviews/internal/adapters/redis"
)

type payload struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	var got payload
	ok, err := c.Get(ctx, "places:details:abc", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "places:details:abc", payload{PlaceID: "abc", Name: "Loft"}, 60))
	assert.True(t, mr.Exists("flexrev:places:details:abc"))

	ok, err = c.Get(ctx, "places:details:abc", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Loft", got.Name)

	require.NoError(t, c.Del(ctx, "places:details:abc"))
	ok, _ = c.Get(ctx, "places:details:abc", &got)
	assert.False(t, ok)
}

func TestCache_TTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{PlaceID: "x"}, 5))
	mr.FastForward(6 * time.Second)

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
