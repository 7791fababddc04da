package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindSpeed(t *testing.T) {
	tests := []struct {
		name     string
		u, v     float64
		expected float64
	}{
		{"calm", 0, 0, 0},
		{"pure eastward", 3, 0, 3},
		{"pure northward", 0, 4, 4},
		{"3-4-5 triangle", 3, 4, 5},
		{"negative components", -3, -4, 5},
		{"fractional", 1.5, 2.0, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WindSpeed(tt.u, tt.v), 1e-9)
		})
	}
}

func TestWindSpeedNonNegative(t *testing.T) {
	for _, u := range []float64{-20, -1, 0, 1, 20} {
		for _, v := range []float64{-20, -1, 0, 1, 20} {
			assert.GreaterOrEqual(t, WindSpeed(u, v), 0.0)
		}
	}
}

func TestCardinalDirection(t *testing.T) {
	tests := []struct {
		name     string
		u, v     float64
		expected string
	}{
		{"wind from north", 0, 1, "N"},
		{"wind from east", 1, 0, "E"},
		{"wind from south", 0, -1, "S"},
		{"wind from west", -1, 0, "W"},
		{"wind from northeast", 1, 1, "NE"},
		{"wind from southeast", 1, -1, "SE"},
		{"wind from southwest", -1, -1, "SW"},
		{"wind from northwest", -1, 1, "NW"},
		{"just east of north", math.Tan(11 * math.Pi / 180), 1, "N"},
		{"just past the N sector boundary", math.Tan(12 * math.Pi / 180), 1, "NNE"},
		{"calm maps to N by convention", 0, 0, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CardinalDirection(tt.u, tt.v))
		})
	}
}

func TestCardinalDirectionAlwaysALabel(t *testing.T) {
	valid := make(map[string]bool, len(CardinalLabels))
	for _, l := range CardinalLabels {
		valid[l] = true
	}

	for deg := 0.0; deg < 360; deg += 1.0 {
		rad := deg * math.Pi / 180
		label := CardinalDirection(math.Sin(rad), math.Cos(rad))
		assert.True(t, valid[label], "angle %v produced unknown label %q", deg, label)
	}
}
