package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want int
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"nan", math.NaN(), 0},
		{"rounds down", 49.4, 49},
		{"rounds up", 49.5, 50},
		{"exact hundred", 100, 100},
		{"over hundred", 250, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.pct))
		})
	}
}

func TestWeight(t *testing.T) {
	initial := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		current float64
		target  float64
		initial *float64
		want    int
	}{
		{"losing halfway", 90, 80, initial(100), 50},
		{"losing done", 80, 80, initial(100), 100},
		{"losing overshoot", 75, 80, initial(100), 100},
		{"losing no movement", 100, 80, initial(100), 0},
		{"losing regression", 105, 80, initial(100), 0},
		{"gaining halfway", 70, 80, initial(60), 50},
		{"gaining done", 80, 80, initial(60), 100},
		{"no baseline falls back to ratio", 90, 80, nil, 100},
		{"no baseline below target", 40, 80, nil, 50},
		{"initial equals target falls back", 90, 80, initial(80), 100},
		{"zero target", 90, 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Weight(tt.current, tt.target, tt.initial))
		})
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		target float64
		want   int
	}{
		{"partial week", 3, 5, 60},
		{"full week", 5, 5, 100},
		{"over target clamps", 8, 5, 100},
		{"zero count", 0, 5, 0},
		{"zero target", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Frequency(tt.count, tt.target))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(-5))
	assert.Equal(t, 40, Percentage(40))
	assert.Equal(t, 100, Percentage(100))
	assert.Equal(t, 100, Percentage(140))
}

func TestMonetary(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		target float64
		want   int
	}{
		{"partial", 7500, 10000, 75},
		{"complete", 10000, 10000, 100},
		{"over target clamps", 15000, 10000, 100},
		{"zero target", 7500, 0, 0},
		{"negative target", 7500, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Monetary(tt.amount, tt.target))
		})
	}
}
