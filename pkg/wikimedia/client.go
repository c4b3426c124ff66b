// Package wikimedia reads images from Wikidata, Wikimedia Commons and
// Wikipedia through their public MediaWiki APIs.
package wikimedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultWikidataURL  = "https://www.wikidata.org/w/api.php"
	defaultCommonsURL   = "https://commons.wikimedia.org/w/api.php"
	defaultWikipediaURL = "https://%s.wikipedia.org/w/api.php"
	defaultUserAgent    = "ClawFood/1.0 (restaurant-finder)"

	// ImageProperty is the Wikidata property holding an entity's image.
	ImageProperty = "P18"
)

var langPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{1,15}$`)

// Client looks up image URLs. Methods return "" with a nil error when the
// source simply has no image.
type Client interface {
	// EntityImage returns the first P18 filename of a Wikidata entity.
	EntityImage(ctx context.Context, entityID string) (string, error)
	// CommonsImageURL resolves a Commons filename (without "File:") to a
	// thumbnail URL at width, falling back to the original file URL.
	CommonsImageURL(ctx context.Context, filename string, width int) (string, error)
	// ArticleThumbnail returns the lead image thumbnail of an article.
	ArticleThumbnail(ctx context.Context, lang, title string, size int) (string, error)
	// NearbyThumbnail returns the first thumbnail among articles near a point.
	NearbyThumbnail(ctx context.Context, q NearbyQuery) (string, error)
}

// NearbyQuery configures a Wikipedia geosearch.
type NearbyQuery struct {
	Lang      string
	Latitude  float64
	Longitude float64
	RadiusM   int
	Limit     int
	ThumbSize int
}

// Option configures the client.
type Option func(*httpClient)

// WithWikidataURL overrides the Wikidata API endpoint.
func WithWikidataURL(u string) Option {
	return func(c *httpClient) { c.wikidataURL = u }
}

// WithCommonsURL overrides the Commons API endpoint.
func WithCommonsURL(u string) Option {
	return func(c *httpClient) { c.commonsURL = u }
}

// WithWikipediaURL overrides the Wikipedia API endpoint template. The
// template must contain one %s for the language code.
func WithWikipediaURL(tmpl string) Option {
	return func(c *httpClient) { c.wikipediaURL = tmpl }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

type httpClient struct {
	wikidataURL  string
	commonsURL   string
	wikipediaURL string
	userAgent    string
	http         *http.Client
}

// NewClient creates a Wikimedia client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		wikidataURL:  defaultWikidataURL,
		commonsURL:   defaultCommonsURL,
		wikipediaURL: defaultWikipediaURL,
		userAgent:    defaultUserAgent,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type claimsResponse struct {
	Claims map[string][]struct {
		Mainsnak struct {
			Datavalue struct {
				Value json.RawMessage `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

func (c *httpClient) EntityImage(ctx context.Context, entityID string) (string, error) {
	if entityID == "" {
		return "", eris.New("wikimedia: empty entity id")
	}

	q := url.Values{
		"action":   {"wbgetclaims"},
		"entity":   {entityID},
		"property": {ImageProperty},
		"format":   {"json"},
		"origin":   {"*"},
	}

	var resp claimsResponse
	if err := c.get(ctx, c.wikidataURL, q, &resp); err != nil {
		return "", err
	}

	claims := resp.Claims[ImageProperty]
	if len(claims) == 0 {
		return "", nil
	}

	// P18 values are strings; anything else is treated as no image.
	var filename string
	if err := json.Unmarshal(claims[0].Mainsnak.Datavalue.Value, &filename); err != nil {
		return "", nil //nolint:nilerr // non-string claim value means no usable image
	}
	return filename, nil
}

type page struct {
	PageID    int64  `json:"pageid"`
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ImageInfo []struct {
		ThumbURL string `json:"thumburl"`
		URL      string `json:"url"`
	} `json:"imageinfo"`
}

type queryResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

// orderedPages returns pages in the order the API ranked them.
func (r queryResponse) orderedPages() []page {
	pages := make([]page, 0, len(r.Query.Pages))
	for _, p := range r.Query.Pages {
		pages = append(pages, p)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Index != pages[j].Index {
			return pages[i].Index < pages[j].Index
		}
		return pages[i].PageID < pages[j].PageID
	})
	return pages
}

// NormalizeFilename strips a "File:" prefix and replaces spaces with
// underscores, the form Commons titles use.
func NormalizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "File:")
	return strings.ReplaceAll(name, " ", "_")
}

func (c *httpClient) CommonsImageURL(ctx context.Context, filename string, width int) (string, error) {
	filename = NormalizeFilename(filename)
	if filename == "" {
		return "", eris.New("wikimedia: empty filename")
	}

	q := url.Values{
		"action":     {"query"},
		"titles":     {"File:" + filename},
		"prop":       {"imageinfo"},
		"iiprop":     {"url"},
		"iiurlwidth": {strconv.Itoa(width)},
		"format":     {"json"},
		"origin":     {"*"},
	}

	var resp queryResponse
	if err := c.get(ctx, c.commonsURL, q, &resp); err != nil {
		return "", err
	}

	for _, p := range resp.orderedPages() {
		if len(p.ImageInfo) == 0 {
			continue
		}
		if p.ImageInfo[0].ThumbURL != "" {
			return p.ImageInfo[0].ThumbURL, nil
		}
		return p.ImageInfo[0].URL, nil
	}
	return "", nil
}

func (c *httpClient) ArticleThumbnail(ctx context.Context, lang, title string, size int) (string, error) {
	endpoint, err := c.wikipediaEndpoint(lang)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", eris.New("wikimedia: empty article title")
	}

	q := url.Values{
		"action":      {"query"},
		"titles":      {title},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {strconv.Itoa(size)},
		"format":      {"json"},
		"origin":      {"*"},
	}

	var resp queryResponse
	if err := c.get(ctx, endpoint, q, &resp); err != nil {
		return "", err
	}

	pages := resp.orderedPages()
	if len(pages) == 0 || pages[0].Thumbnail == nil {
		return "", nil
	}
	return pages[0].Thumbnail.Source, nil
}

func (c *httpClient) NearbyThumbnail(ctx context.Context, nq NearbyQuery) (string, error) {
	endpoint, err := c.wikipediaEndpoint(nq.Lang)
	if err != nil {
		return "", err
	}

	q := url.Values{
		"action":      {"query"},
		"generator":   {"geosearch"},
		"ggscoord":    {fmt.Sprintf("%s|%s", formatCoord(nq.Latitude), formatCoord(nq.Longitude))},
		"ggsradius":   {strconv.Itoa(nq.RadiusM)},
		"ggslimit":    {strconv.Itoa(nq.Limit)},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {strconv.Itoa(nq.ThumbSize)},
		"format":      {"json"},
		"origin":      {"*"},
	}

	var resp queryResponse
	if err := c.get(ctx, endpoint, q, &resp); err != nil {
		return "", err
	}

	for _, p := range resp.orderedPages() {
		if p.Thumbnail != nil && p.Thumbnail.Source != "" {
			return p.Thumbnail.Source, nil
		}
	}
	return "", nil
}

func (c *httpClient) wikipediaEndpoint(lang string) (string, error) {
	if lang == "" {
		lang = "en"
	}
	if !langPattern.MatchString(lang) {
		return "", eris.Errorf("wikimedia: invalid language %q", lang)
	}
	return fmt.Sprintf(c.wikipediaURL, lang), nil
}

func (c *httpClient) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "wikimedia: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "wikimedia: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "wikimedia: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("wikimedia: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "wikimedia: unmarshal response")
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
