package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDistanceKm(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"0.5km", 0.5, true},
		{"1.2 km", 1.2, true},
		{"1,2 km", 1.2, true},
		{"800m", 0.8, true},
		{"250 meters", 0.25, true},
		{"3", 3, true},
		{"~2KM away", 2, true},
		{"", 0, false},
		{"nearby", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDistanceKm(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(10.7769, 106.7009, 10.7769, 106.7009), 1e-9)

	// Ben Thanh Market to Notre-Dame Cathedral, Saigon: about 0.8 km.
	d := HaversineKm(10.7725, 106.6980, 10.7798, 106.6990)
	assert.InDelta(t, 0.82, d, 0.05)

	// Hanoi to Ho Chi Minh City: about 1,140 km.
	assert.InDelta(t, 1140, HaversineKm(21.0285, 105.8542, 10.8231, 106.6297), 15)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "0m", FormatDistance(0))
	assert.Equal(t, "850m", FormatDistance(0.85))
	assert.Equal(t, "999m", FormatDistance(0.9994))
	assert.Equal(t, "1.0km", FormatDistance(1))
	assert.Equal(t, "12.3km", FormatDistance(12.34))
}
