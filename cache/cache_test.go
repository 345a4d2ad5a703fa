package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("https://example.com", "basic-info")
	b := Key("https://example.com", "basic-info")
	c := Key("https://example.com", "tech-seo")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestKey_PartsAreDelimited(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestCache_SetGet(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("k", "result")
	v, ok := c.Get("k")

	require.True(t, ok)
	assert.Equal(t, "result", v)
}

func TestCache_Miss(t *testing.T) {
	c := New(10, time.Minute)

	_, ok := c.Get("absent")

	assert.False(t, ok)
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New(10, 0)

	c.Set("k", "result")
	_, ok := c.Get("k")

	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(10, 50*time.Millisecond)
	c.Set("k", "result")

	c.mu.Lock()
	c.store["k"].createdAt = time.Now().Add(-time.Second)
	c.mu.Unlock()

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Len(t, c.store, 2)
}
