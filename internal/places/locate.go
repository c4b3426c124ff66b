package places

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/resilience"
	"github.com/clawfood/clawfood/pkg/nominatim"
)

// UnknownLocation is the label used when an origin cannot be described.
const UnknownLocation = "Unknown location"

// Locator turns an origin into a short address label. It shares the
// geocoder throttle with enrichment.
type Locator struct {
	client   nominatim.Client
	throttle *resilience.Throttle
}

// NewLocator creates a Locator.
func NewLocator(client nominatim.Client, throttle *resilience.Throttle) *Locator {
	return &Locator{client: client, throttle: throttle}
}

// Locate reverse-geocodes lat/lon to "road, suburb, city". It never fails;
// lookups that go wrong yield UnknownLocation.
func (l *Locator) Locate(ctx context.Context, lat, lon float64) string {
	if err := l.throttle.Wait(ctx); err != nil {
		return UnknownLocation
	}

	p, err := l.client.Reverse(ctx, lat, lon)
	if err != nil {
		zap.L().Debug("places: reverse geocode failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return UnknownLocation
	}
	return Label(p)
}

// Label renders the short form of a reverse-geocoded place.
func Label(p *nominatim.Place) string {
	if p == nil || len(p.Address) == 0 {
		return UnknownLocation
	}

	var parts []string
	for _, key := range []string{"road", "suburb"} {
		if v := p.Address[key]; v != "" {
			parts = append(parts, v)
		}
	}
	if city := firstNonEmpty(p.Address["city"], p.Address["town"]); city != "" {
		parts = append(parts, city)
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	if p.DisplayName != "" {
		fields := strings.Split(p.DisplayName, ",")
		if len(fields) > 3 {
			fields = fields[:3]
		}
		return strings.Join(fields, ",")
	}
	return UnknownLocation
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
