// Package nominatim is a small client for the OpenStreetMap Nominatim
// search and reverse geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "ClawFood/1.0 (restaurant-finder)"
)

// Client performs Nominatim lookups. It does not rate limit; callers share a
// throttle for that.
type Client interface {
	Search(ctx context.Context, params SearchParams) ([]Place, error)
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
}

// Viewbox biases a search toward an area, in Nominatim's left,top,right,bottom order.
type Viewbox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (v Viewbox) String() string {
	return formatCoord(v.Left) + "," + formatCoord(v.Top) + "," +
		formatCoord(v.Right) + "," + formatCoord(v.Bottom)
}

// SearchParams configures a free-text search.
type SearchParams struct {
	Query          string
	Limit          int
	ExtraTags      bool
	AddressDetails bool
	Viewbox        *Viewbox
	Bounded        bool
}

// Place is one jsonv2 result.
type Place struct {
	PlaceID     int64             `json:"place_id"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address,omitempty"`
	ExtraTags   map[string]string `json:"extratags,omitempty"`
}

// Coordinates parses the string lat/lon pair.
func (p Place) Coordinates() (lat, lon float64, ok bool) {
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the identifying User-Agent the usage policy requires.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithAcceptLanguage sets the preferred language for reverse lookups.
func WithAcceptLanguage(lang string) Option {
	return func(c *httpClient) {
		c.acceptLanguage = lang
	}
}

type httpClient struct {
	baseURL        string
	userAgent      string
	acceptLanguage string
	http           *http.Client
}

// NewClient creates a Nominatim client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, params SearchParams) ([]Place, error) {
	if params.Query == "" {
		return nil, eris.New("nominatim: empty query")
	}

	q := url.Values{
		"q":      {params.Query},
		"format": {"jsonv2"},
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.ExtraTags {
		q.Set("extratags", "1")
	}
	if params.AddressDetails {
		q.Set("addressdetails", "1")
	}
	if params.Viewbox != nil {
		q.Set("viewbox", params.Viewbox.String())
		q.Set("bounded", boolParam(params.Bounded))
	}

	var places []Place
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// reverseResponse carries the error field Nominatim sets instead of a 404.
type reverseResponse struct {
	Place
	Error string `json:"error"`
}

func (c *httpClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	q := url.Values{
		"format": {"jsonv2"},
		"lat":    {formatCoord(lat)},
		"lon":    {formatCoord(lon)},
	}
	if c.acceptLanguage != "" {
		q.Set("accept-language", c.acceptLanguage)
	}

	var resp reverseResponse
	if err := c.get(ctx, "/reverse", q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, eris.Errorf("nominatim: reverse: %s", resp.Error)
	}
	return &resp.Place, nil
}

func (c *httpClient) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "nominatim: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "nominatim: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "nominatim: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "nominatim: unmarshal response")
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
