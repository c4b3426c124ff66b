package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `[
	{
		"place_id": 123,
		"osm_type": "node",
		"osm_id": 456,
		"lat": "10.7731",
		"lon": "106.7030",
		"category": "amenity",
		"type": "restaurant",
		"display_name": "Pho 2000, 1 Phan Chu Trinh, Ben Thanh, Ho Chi Minh City",
		"address": {"road": "Phan Chu Trinh", "city": "Ho Chi Minh City"},
		"extratags": {"wikidata": "Q123", "cuisine": "vietnamese"}
	},
	{
		"place_id": 124,
		"lat": "10.8",
		"lon": "106.8",
		"display_name": "Second"
	}
]`

func TestSearch_QueryParametersAndHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, searchFixture)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("test-agent/1.0"))
	places, err := c.Search(context.Background(), SearchParams{
		Query:          "Pho 2000, 1 Phan Chu Trinh",
		Limit:          1,
		ExtraTags:      true,
		AddressDetails: true,
		Viewbox:        &Viewbox{Left: 106.65, Top: 10.82, Right: 106.75, Bottom: 10.72},
	})
	require.NoError(t, err)
	require.Len(t, places, 2)

	require.NotNil(t, got)
	assert.Equal(t, "/search", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "Pho 2000, 1 Phan Chu Trinh", q.Get("q"))
	assert.Equal(t, "jsonv2", q.Get("format"))
	assert.Equal(t, "1", q.Get("limit"))
	assert.Equal(t, "1", q.Get("extratags"))
	assert.Equal(t, "1", q.Get("addressdetails"))
	assert.Equal(t, "106.65,10.82,106.75,10.72", q.Get("viewbox"))
	assert.Equal(t, "0", q.Get("bounded"))
	assert.Equal(t, "test-agent/1.0", got.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))

	p := places[0]
	assert.Equal(t, "Pho 2000, 1 Phan Chu Trinh, Ben Thanh, Ho Chi Minh City", p.DisplayName)
	assert.Equal(t, "Q123", p.ExtraTags["wikidata"])
	assert.Equal(t, "Phan Chu Trinh", p.Address["road"])
	lat, lon, ok := p.Coordinates()
	assert.True(t, ok)
	assert.InDelta(t, 10.7731, lat, 1e-9)
	assert.InDelta(t, 106.7030, lon, 1e-9)
}

func TestSearch_DefaultUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	places, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), SearchParams{Query: "x"})
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, defaultUserAgent, ua)
}

func TestSearch_EmptyQuery(t *testing.T) {
	_, err := NewClient().Search(context.Background(), SearchParams{})
	assert.Error(t, err)
}

func TestSearch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), SearchParams{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSearch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"not": "an array"`)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), SearchParams{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestReverse(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = io.WriteString(w, `{
			"lat": "10.7769", "lon": "106.7009",
			"display_name": "Dong Khoi, Ben Nghe, District 1, Ho Chi Minh City, Vietnam",
			"address": {"road": "Dong Khoi", "suburb": "Ben Nghe", "city": "Ho Chi Minh City"}
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAcceptLanguage("en"))
	p, err := c.Reverse(context.Background(), 10.7769, 106.7009)
	require.NoError(t, err)

	assert.Equal(t, "/reverse", got.URL.Path)
	assert.Equal(t, "10.7769", got.URL.Query().Get("lat"))
	assert.Equal(t, "106.7009", got.URL.Query().Get("lon"))
	assert.Equal(t, "en", got.URL.Query().Get("accept-language"))
	assert.Equal(t, "Dong Khoi", p.Address["road"])
}

func TestReverse_UnableToGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"error": "Unable to geocode"}`)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Reverse(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to geocode")
}

func TestPlace_CoordinatesInvalid(t *testing.T) {
	_, _, ok := Place{Lat: "north", Lon: "1"}.Coordinates()
	assert.False(t, ok)
}

func TestViewbox_String(t *testing.T) {
	v := Viewbox{Left: 19.95, Top: 10.05, Right: 20.05, Bottom: 9.95}
	assert.Equal(t, "19.95,10.05,20.05,9.95", v.String())
}
