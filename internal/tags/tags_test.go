package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	valid := []string{"core-kit", "rain", "warm_layer", "tag 2", "A1"}
	for _, id := range valid {
		assert.True(t, Valid(id), id)
	}

	invalid := []string{"", "bad!tag", "a,b", "  ", "double  space", strings.Repeat("x", 65)}
	for _, id := range invalid {
		assert.False(t, Valid(id), id)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Rain", "rain"))
	assert.True(t, Equal(" core-kit ", "CORE-KIT"))
	assert.False(t, Equal("rain", "adapter"))
}

func TestAllowlist(t *testing.T) {
	sets := [][]string{
		{"rain", "adapter"},
		{"rain", "bad!tag"},
		{"bottle"},
	}
	assert.Equal(t, []string{"adapter", "bottle", "rain"}, Allowlist(sets))
}

func TestByFrequency(t *testing.T) {
	sets := [][]string{
		{"rain", "adapter"},
		{"rain", "bottle"},
		{"rain", "adapter"},
		{"bottle"},
	}
	// rain=3, adapter=2, bottle=2 (tie broken lexicographically)
	assert.Equal(t, []string{"rain", "adapter", "bottle"}, ByFrequency(sets))
}

func TestCategory(t *testing.T) {
	c, ok := Category("GEAR_POWER_BANK")
	assert.True(t, ok)
	assert.Equal(t, CategoryGear, c)

	_, ok = Category("free-form-tag")
	assert.False(t, ok)

	known := Known()
	assert.Len(t, known, 10)
	assert.Contains(t, known, "CLOTHING_THERMAL_LAYER")
}
