package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignRating(t *testing.T) {
	cases := []struct {
		name string
		raw  int
		want Rating
	}{
		{"in range", 1250, Rating{Value: 1250, Min: 1050, Max: 1450}},
		{"default", DefaultRating, Rating{Value: 1200, Min: 1000, Max: 1400}},
		{"below floor", 500, Rating{Value: 800, Min: 600, Max: 1000}},
		{"at floor", 800, Rating{Value: 800, Min: 600, Max: 1000}},
		{"at ceiling", 2400, Rating{Value: 2400, Min: 2200, Max: 2600}},
		{"above ceiling", 9000, Rating{Value: 2400, Min: 2200, Max: 2600}},
		{"negative", -100, Rating{Value: 800, Min: 600, Max: 1000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AssignRating(tc.raw))
		})
	}
}

// The range is always value±200 even when the value sits on a bound; the
// range itself is never clamped.
func TestAssignRatingRangeUnclamped(t *testing.T) {
	r := AssignRating(100)
	assert.Equal(t, 800, r.Value)
	assert.Equal(t, 600, r.Min)

	r = AssignRating(3000)
	assert.Equal(t, 2400, r.Value)
	assert.Equal(t, 2600, r.Max)
}
