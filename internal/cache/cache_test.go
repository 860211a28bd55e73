package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLStore_PutGet(t *testing.T) {
	s := NewTTLStore[string](time.Hour)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("k", "v")
	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTTLStore_ExpiryIsLazy(t *testing.T) {
	now := time.Now()
	s := NewTTLStore[int](time.Hour).WithClock(func() time.Time { return now })

	s.Put("k", 42)
	assert.Equal(t, 1, s.Len())

	now = now.Add(2 * time.Hour)
	_, ok := s.Get("k")
	assert.False(t, ok)
	// the expired entry was evicted by the lookup
	assert.Equal(t, 0, s.Len())
}

func TestTTLStore_RefreshExtendsDeadline(t *testing.T) {
	now := time.Now()
	s := NewTTLStore[int](time.Hour).WithClock(func() time.Time { return now })

	s.Put("k", 1)
	now = now.Add(50 * time.Minute)
	s.Put("k", 2)
	now = now.Add(50 * time.Minute)

	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}
