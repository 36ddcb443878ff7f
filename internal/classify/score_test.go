package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViralityScore(t *testing.T) {
	tests := []struct {
		name     string
		likes    int
		comments int
		views    int
		expected int
	}{
		{
			name:     "Weighted sum",
			likes:    1000,
			comments: 50,
			views:    200000,
			expected: 3150,
		},
		{
			name:     "All zero",
			expected: 0,
		},
		{
			name:     "Negative counters treated as missing",
			likes:    -5,
			comments: -1,
			views:    -100,
			expected: 0,
		},
		{
			name:     "Views round up",
			views:    150, // 1.5 rounds to 2
			expected: 2,
		},
		{
			name:     "No upper cap",
			likes:    10_000_000,
			comments: 1_000_000,
			views:    500_000_000,
			expected: 18_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ViralityScore(tt.likes, tt.comments, tt.views))
		})
	}
}

func TestHeatScore(t *testing.T) {
	tests := []struct {
		name     string
		virality int
		expected int
	}{
		{"Zero", 0, 0},
		{"Negative pins to zero", -10, 0},
		{"First segment midpoint", 500, 10},
		{"Segment boundary at 1000", 1000, 20},
		{"Second segment", 3150, 25},
		{"Segment boundary at 10000", 10000, 40},
		{"Third segment midpoint", 55000, 50},
		{"Segment boundary at 100000", 100000, 60},
		{"Fourth segment midpoint", 300000, 70},
		{"Segment boundary at 500000", 500000, 80},
		{"Fifth segment midpoint", 750000, 90},
		{"One million pins to 100", 1_000_000, 100},
		{"Beyond one million stays at 100", 50_000_000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HeatScore(tt.virality))
		})
	}
}

func TestHeatScoreMonotonic(t *testing.T) {
	previous := 0
	for v := 0; v <= 1_200_000; v += 777 {
		heat := HeatScore(v)

		assert.GreaterOrEqual(t, heat, previous, "heat dropped at virality %d", v)
		assert.GreaterOrEqual(t, heat, 0)
		assert.LessOrEqual(t, heat, 100)
		previous = heat
	}
}
