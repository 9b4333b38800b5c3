package pidigits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	digits := Digits(40)
	require.NoError(t, cache.Put(digits))

	got, ok := cache.Get(40)
	require.True(t, ok)
	assert.Equal(t, digits, got)

	// Shorter requests come from the stored prefix.
	got, ok = cache.Get(10)
	require.True(t, ok)
	assert.Equal(t, digits[:10], got)
}

func TestCache_MissWhenEmpty(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	_, ok := cache.Get(5)
	assert.False(t, ok)
}

func TestCache_MissWhenTooShort(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Put(Digits(10)))

	_, ok := cache.Get(11)
	assert.False(t, ok)
}

func TestCache_KeepsLongestRun(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put(Digits(50)))
	require.NoError(t, cache.Put(Digits(10)))

	got, ok := cache.Get(50)
	require.True(t, ok)
	assert.Equal(t, Digits(50), got)
}

func TestCache_StaleVersion(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put(Digits(10)))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".version"), []byte("0"), 0644))

	_, ok := cache.Get(5)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Put(Digits(10)))
	require.NoError(t, cache.Clear())

	_, ok := cache.Get(1)
	assert.False(t, ok)
}

func TestSource_CacheFirst(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	src := NewSource(cache)
	first := src.Digits(30)
	assert.Equal(t, Digits(30), first)

	// The second call is served from disk and must agree.
	second := src.Digits(30)
	assert.Equal(t, first, second)

	cached, ok := cache.Get(30)
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestSource_NilCache(t *testing.T) {
	src := NewSource(nil)
	assert.Equal(t, Digits(12), src.Digits(12))
}
