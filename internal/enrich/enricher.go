// Package enrich attaches canonical addresses, photos and map links to
// restaurant suggestions.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/maplink"
	"github.com/clawfood/clawfood/internal/model"
	"github.com/clawfood/clawfood/internal/photo"
	"github.com/clawfood/clawfood/internal/placeholder"
	"github.com/clawfood/clawfood/internal/places"
	"github.com/clawfood/clawfood/internal/resilience"
)

// PlaceResolver finds the geocoder record for a restaurant.
type PlaceResolver interface {
	Resolve(ctx context.Context, q places.Query) *places.Record
}

// PhotoResolver finds a photo for a resolved place.
type PhotoResolver interface {
	Resolve(ctx context.Context, rec *places.Record, lat, lon float64) *photo.Result
}

// Enricher runs the place and photo lookups for each restaurant, one
// restaurant at a time. Every geocoder call first acquires the throttle.
type Enricher struct {
	throttle *resilience.Throttle
	places   PlaceResolver
	photos   PhotoResolver
}

// New creates an Enricher. The throttle must be the one shared by every
// geocoder caller in the process.
func New(throttle *resilience.Throttle, pr PlaceResolver, ph PhotoResolver) *Enricher {
	return &Enricher{throttle: throttle, places: pr, photos: ph}
}

// Enrich returns a copy of restaurants in the same order with photos,
// addresses and map links filled in. It never fails: lookups that go wrong
// leave the restaurant as it was apart from its map links. Once ctx is done
// no further lookups are made.
func (e *Enricher) Enrich(ctx context.Context, restaurants []model.Restaurant, originLat, originLon float64) []model.Restaurant {
	start := time.Now()
	out := make([]model.Restaurant, len(restaurants))
	copy(out, restaurants)

	var found int
	for i := range out {
		ensureLinks(&out[i])
		if ctx.Err() == nil && e.enrichOne(ctx, &out[i], originLat, originLon) {
			found++
		}
		if out[i].Image == "" {
			out[i].Image = placeholder.ForIndex(i)
		}
	}

	zap.L().Debug("enrich: complete",
		zap.Int("restaurants", len(out)),
		zap.Int("photos", found),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out
}

// enrichOne applies the merge policy and reports whether a photo was found.
func (e *Enricher) enrichOne(ctx context.Context, r *model.Restaurant, originLat, originLon float64) bool {
	lat, lon := r.CoordinatesOr(originLat, originLon)

	var rec *places.Record
	if err := e.throttle.Wait(ctx); err != nil {
		zap.L().Debug("enrich: throttle wait aborted", zap.String("name", r.Name), zap.Error(err))
	} else {
		rec = e.places.Resolve(ctx, places.Query{
			Name:      r.Name,
			Address:   r.Address,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	res := e.photos.Resolve(ctx, rec, lat, lon)
	if res == nil {
		return false
	}

	if res.PhotoURL != "" {
		if !placeholder.IsReal(r.Image) {
			r.Image = res.PhotoURL
		}
		r.PhotoURL = res.PhotoURL
	}
	if res.DisplayAddress != "" {
		r.Address = res.DisplayAddress
	}
	return res.PhotoURL != ""
}

// ensureLinks fills missing map links from the restaurant as it arrived,
// using its own coordinates only.
func ensureLinks(r *model.Restaurant) {
	var lat, lon *float64
	if r.HasCoordinates() {
		lat, lon = r.Latitude, r.Longitude
	}
	if r.GoogleMapsURL == "" {
		r.GoogleMapsURL = maplink.GoogleMaps(r.Name, r.Address, lat, lon)
	}
	if r.OSMURL == "" {
		r.OSMURL = maplink.OpenStreetMap(r.Name, lat, lon)
	}
}
