// Package places resolves a restaurant to its OpenStreetMap record.
package places

import (
	"context"
	"strings"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/clawfood/clawfood/internal/maplink"
	"github.com/clawfood/clawfood/pkg/nominatim"
)

// DefaultViewboxDelta is the half-size, in degrees, of the box that biases
// a search toward the expected location.
const DefaultViewboxDelta = 0.05

// Query identifies the restaurant to look up.
type Query struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

// Resolver looks up places with a single geocoder search. It does not
// throttle; the caller acquires the shared throttle first.
type Resolver struct {
	client nominatim.Client
	delta  float64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithViewboxDelta overrides DefaultViewboxDelta.
func WithViewboxDelta(d float64) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.delta = d
		}
	}
}

// NewResolver creates a Resolver backed by client.
func NewResolver(client nominatim.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{client: client, delta: DefaultViewboxDelta}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the first geocoder match for q, or nil when the lookup
// fails or finds nothing.
func (r *Resolver) Resolve(ctx context.Context, q Query) *Record {
	text := norm.NFC.String(maplink.Query(q.Name, q.Address))
	if strings.TrimSpace(text) == "" {
		return nil
	}

	box := viewbox(q.Latitude, q.Longitude, r.delta)
	results, err := r.client.Search(ctx, nominatim.SearchParams{
		Query:          text,
		Limit:          1,
		ExtraTags:      true,
		AddressDetails: true,
		Viewbox: &nominatim.Viewbox{
			Left:   box.Min(0),
			Top:    box.Max(1),
			Right:  box.Max(0),
			Bottom: box.Min(1),
		},
		Bounded: false,
	})
	if err != nil {
		zap.L().Debug("places: search failed",
			zap.String("query", text),
			zap.Error(err),
		)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	return toRecord(results[0], box)
}

func toRecord(p nominatim.Place, box *geom.Bounds) *Record {
	rec := &Record{
		DisplayName: p.DisplayName,
		Address:     p.Address,
		Tags:        tagsFrom(p.ExtraTags),
	}
	if lat, lon, ok := p.Coordinates(); ok {
		rec.Latitude = lat
		rec.Longitude = lon
		rec.HasCoordinates = true
		rec.InViewbox = box.OverlapsPoint(geom.XY, geom.Coord{lon, lat})
	}
	return rec
}

// viewbox is the search bias box, x = longitude and y = latitude.
func viewbox(lat, lon, delta float64) *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(lon-delta, lat-delta, lon+delta, lat+delta)
}
