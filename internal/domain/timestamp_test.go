package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochMillisToISO(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected string
	}{
		{"epoch", 0, "1970-01-01T00:00:00Z"},
		{"new year 2023", 1672531200000, "2023-01-01T00:00:00Z"},
		{"sub-second precision truncated", 1672531200999, "2023-01-01T00:00:00Z"},
		{"negative", -1, InvalidTimestamp},
		{"negative overflow", -9223372036854775808, InvalidTimestamp},
		{"year 3000 boundary", 32503680000000, InvalidTimestamp},
		{"just inside the range", 32503679999999, "2999-12-31T23:59:59Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EpochMillisToISO(tt.ms))
		})
	}
}
