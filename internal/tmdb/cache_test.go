package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := newCache(time.Hour)

	// Miss
	_, ok := c.get("/3/movie/12345?")
	assert.False(t, ok, "empty cache should miss")

	// Set and hit
	c.set("/3/movie/12345?", []byte(`{"id":12345}`))

	got, ok := c.get("/3/movie/12345?")
	require.True(t, ok, "should hit after set")
	assert.JSONEq(t, `{"id":12345}`, string(got))

	// Different key should miss
	_, ok = c.get("/3/movie/99999?")
	assert.False(t, ok, "different key should miss")
}

func TestCache_Expiry(t *testing.T) {
	c := newCache(10 * time.Millisecond)

	c.set("/3/tv/1?", []byte(`{}`))

	_, ok := c.get("/3/tv/1?")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.get("/3/tv/1?")
	assert.False(t, ok, "should miss after TTL")
}
