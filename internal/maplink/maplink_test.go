package maplink

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestGoogleMaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		place    string
		address  string
		lat, lon *float64
		want     string
	}{
		{
			name:    "anchored",
			place:   "Cafe X",
			address: "1 Main St",
			lat:     ptr(10),
			lon:     ptr(20.5),
			want:    "https://www.google.com/maps/search/Cafe%20X%2C%201%20Main%20St/@10,20.5,17z",
		},
		{
			name:  "no coordinates",
			place: "Phở Thìn",
			want:  "https://www.google.com/maps/search/?api=1&query=Ph%E1%BB%9F%20Th%C3%ACn",
		},
		{
			name:    "zero coordinate treated as absent",
			place:   "A&B Grill",
			address: "5/7 Le Loi",
			lat:     ptr(0),
			lon:     ptr(106.7),
			want:    "https://www.google.com/maps/search/?api=1&query=A%26B%20Grill%2C%205%2F7%20Le%20Loi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GoogleMaps(tt.place, tt.address, tt.lat, tt.lon)
			assert.Equal(t, tt.want, got)

			_, err := url.Parse(got)
			require.NoError(t, err)
		})
	}
}

func TestGoogleMaps_Deterministic(t *testing.T) {
	t.Parallel()

	a := GoogleMaps("Bún Chả", "24 Lê Văn Hưu", ptr(21.0), ptr(105.8))
	b := GoogleMaps("Bún Chả", "24 Lê Văn Hưu", ptr(21.0), ptr(105.8))
	assert.Equal(t, a, b)
}

func TestOpenStreetMap(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://www.openstreetmap.org/?mlat=10.7769&mlon=106.7009#map=17/10.7769/106.7009",
		OpenStreetMap("Anything", ptr(10.7769), ptr(106.7009)),
	)
	assert.Equal(t,
		"https://www.openstreetmap.org/search?query=Pho%2024%20%2F%20Banh%20Mi",
		OpenStreetMap("Pho 24 / Banh Mi", nil, nil),
	)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cafe X, 1 Main St", Query("Cafe X", "1 Main St"))
	assert.Equal(t, "Cafe X", Query(" Cafe X ", "  "))
}
