// Package suggest turns a craving keyword and a location into enriched,
// filtered restaurant suggestions.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/filter"
	"github.com/clawfood/clawfood/internal/llm"
	"github.com/clawfood/clawfood/internal/maplink"
	"github.com/clawfood/clawfood/internal/model"
	"github.com/clawfood/clawfood/internal/placeholder"
	"github.com/clawfood/clawfood/internal/resilience"
)

// DefaultCount is how many suggestions are requested from the model.
const DefaultCount = 6

// ErrEmptyKeyword is returned for a blank search.
var ErrEmptyKeyword = eris.New("suggest: keyword is required")

// Enricher attaches photos, addresses and map links.
type Enricher interface {
	Enrich(ctx context.Context, restaurants []model.Restaurant, originLat, originLon float64) []model.Restaurant
}

// Options configures a Service.
type Options struct {
	Count            int
	DefaultLatitude  float64
	DefaultLongitude float64
	Retry            resilience.RetryConfig
}

// Service answers searches. A nil LLM client serves the built-in mock list;
// a nil Enricher skips enrichment.
type Service struct {
	llm      llm.Client
	enricher Enricher
	opts     Options
}

// NewService creates a Service.
func NewService(client llm.Client, enricher Enricher, opts Options) *Service {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Retry.OnRetry == nil {
		opts.Retry.OnRetry = resilience.RetryLogger("llm", "suggest")
	}
	return &Service{llm: client, enricher: enricher, opts: opts}
}

// Search asks the model for suggestions near the request origin, then
// enriches, measures and filters them. Missing coordinates fall back to
// the configured default origin.
func (s *Service) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	lat, lon := req.Latitude, req.Longitude
	if lat == 0 && lon == 0 {
		lat, lon = s.opts.DefaultLatitude, s.opts.DefaultLongitude
	}

	start := time.Now()
	restaurants, source, err := s.suggest(ctx, keyword, lat, lon)
	if err != nil {
		return nil, err
	}

	Prepare(restaurants, lat, lon)
	if s.enricher != nil {
		restaurants = s.enricher.Enrich(ctx, restaurants, lat, lon)
	}
	if req.Filters != nil && req.Filters.Active() {
		restaurants = filter.Apply(restaurants, *req.Filters)
	}

	zap.L().Info("suggest: search complete",
		zap.String("keyword", keyword),
		zap.String("source", string(source)),
		zap.Int("results", len(restaurants)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &model.SearchResponse{
		Message:     fmt.Sprintf("Found %d places matching %q near you!", len(restaurants), keyword),
		Restaurants: restaurants,
		Source:      source,
	}, nil
}

func (s *Service) suggest(ctx context.Context, keyword string, lat, lon float64) ([]model.Restaurant, model.SearchSource, error) {
	if s.llm == nil {
		zap.L().Debug("suggest: no model configured, serving mock results")
		return MockRestaurants(keyword), model.SourceMock, nil
	}

	prompt := BuildPrompt(keyword, lat, lon, s.opts.Count)
	raw, err := resilience.DoVal(ctx, s.opts.Retry, func(ctx context.Context) (string, error) {
		return s.llm.Complete(ctx, SystemPrompt, prompt)
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return MockRestaurants(keyword), model.SourceMock, nil
		}
		return nil, "", eris.Wrapf(err, "suggest: %s", s.llm.Name())
	}

	restaurants, err := Parse(raw)
	if err != nil {
		zap.L().Warn("suggest: unparseable model output",
			zap.String("model", s.llm.Name()),
			zap.Int("bytes", len(raw)),
		)
		return nil, "", err
	}
	return restaurants, model.SourceLLM, nil
}

// Prepare fills the fields a suggestion needs before enrichment: an ID from
// its position, a stock image, both map links and the distance from the
// origin when the suggestion has coordinates.
func Prepare(restaurants []model.Restaurant, originLat, originLon float64) {
	for i := range restaurants {
		r := &restaurants[i]
		if r.ID == "" {
			r.ID = idFor(i)
		}
		if r.Image == "" {
			r.Image = placeholder.ForIndex(i)
		}

		var lat, lon *float64
		if r.HasCoordinates() {
			lat, lon = r.Latitude, r.Longitude
			km := filter.HaversineKm(originLat, originLon, *lat, *lon)
			r.DistanceKm = model.Float(km)
			if r.Distance == "" {
				r.Distance = filter.FormatDistance(km)
			}
		}
		if r.GoogleMapsURL == "" {
			r.GoogleMapsURL = maplink.GoogleMaps(r.Name, r.Address, lat, lon)
		}
		if r.OSMURL == "" {
			r.OSMURL = maplink.OpenStreetMap(r.Name, lat, lon)
		}
	}
}

func idFor(i int) string {
	return strconv.Itoa(i + 1)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
