// Package photo finds a representative photo for a resolved place.
package photo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/places"
	"github.com/clawfood/clawfood/pkg/wikimedia"
)

// Source names the step that produced a photo.
type Source string

const (
	SourceDirectImage      Source = "direct-image"
	SourceCommonsFile      Source = "commons-file"
	SourceWikidata         Source = "wikidata-p18"
	SourceWikipediaArticle Source = "wikipedia-article"
	SourceNearby           Source = "nearby"
)

// Defaults for thumbnail size and the geosearch fallback.
const (
	DefaultThumbWidth   = 400
	DefaultNearbyRadius = 500
	DefaultNearbyLimit  = 5
	DefaultNearbyLang   = "en"
)

// Result is what the resolver found. PhotoURL is empty when only the
// display address is known.
type Result struct {
	PhotoURL       string
	DisplayAddress string
	Source         Source
}

// Options tunes the lookups.
type Options struct {
	ThumbWidth   int
	NearbyRadius int
	NearbyLimit  int
	NearbyLang   string
}

func (o Options) withDefaults() Options {
	if o.ThumbWidth <= 0 {
		o.ThumbWidth = DefaultThumbWidth
	}
	if o.NearbyRadius <= 0 {
		o.NearbyRadius = DefaultNearbyRadius
	}
	if o.NearbyLimit <= 0 {
		o.NearbyLimit = DefaultNearbyLimit
	}
	if o.NearbyLang == "" {
		o.NearbyLang = DefaultNearbyLang
	}
	return o
}

// lookup is the input every strategy sees.
type lookup struct {
	rec *places.Record
	lat float64
	lon float64
}

// strategy returns a photo URL or "" when its source has nothing.
type strategy struct {
	source Source
	find   func(ctx context.Context, in lookup) (string, error)
}

// Resolver walks the photo sources in priority order and stops at the
// first one that yields a URL.
type Resolver struct {
	client     wikimedia.Client
	opts       Options
	strategies []strategy
}

// NewResolver creates a Resolver.
func NewResolver(client wikimedia.Client, opts Options) *Resolver {
	r := &Resolver{client: client, opts: opts.withDefaults()}
	r.strategies = []strategy{
		{SourceDirectImage, r.directImage},
		{SourceCommonsFile, r.commonsFile},
		{SourceWikidata, r.wikidataImage},
		{SourceWikipediaArticle, r.wikipediaArticle},
		{SourceNearby, r.nearby},
	}
	return r
}

// Resolve returns the photo for rec, using lat/lon for the geosearch when
// rec has no coordinates. It returns nil when there is neither a record
// nor a photo. Lookup failures count as "no photo from this source".
func (r *Resolver) Resolve(ctx context.Context, rec *places.Record, lat, lon float64) *Result {
	in := lookup{rec: rec, lat: lat, lon: lon}
	if rec != nil && rec.HasCoordinates {
		in.lat, in.lon = rec.Latitude, rec.Longitude
	}

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}
		u, err := s.find(ctx, in)
		if err != nil {
			zap.L().Debug("photo: source failed, trying next",
				zap.String("source", string(s.source)),
				zap.Error(err),
			)
			continue
		}
		if u != "" {
			res := &Result{PhotoURL: u, Source: s.source}
			if rec != nil {
				res.DisplayAddress = rec.DisplayName
			}
			return res
		}
	}

	if rec == nil {
		return nil
	}
	return &Result{DisplayAddress: rec.DisplayName}
}

func (r *Resolver) directImage(_ context.Context, in lookup) (string, error) {
	if in.rec == nil {
		return "", nil
	}
	return strings.TrimSpace(in.rec.Tags.Image), nil
}

func (r *Resolver) commonsFile(ctx context.Context, in lookup) (string, error) {
	name, ok := in.rec.CommonsFile()
	if !ok {
		return "", nil
	}
	return r.client.CommonsImageURL(ctx, name, r.opts.ThumbWidth)
}

func (r *Resolver) wikidataImage(ctx context.Context, in lookup) (string, error) {
	if in.rec == nil || in.rec.Tags.Wikidata == "" {
		return "", nil
	}
	name, err := r.client.EntityImage(ctx, in.rec.Tags.Wikidata)
	if err != nil || name == "" {
		return "", err
	}
	return r.client.CommonsImageURL(ctx, name, r.opts.ThumbWidth)
}

func (r *Resolver) wikipediaArticle(ctx context.Context, in lookup) (string, error) {
	lang, title, ok := in.rec.WikipediaArticle()
	if !ok {
		return "", nil
	}
	return r.client.ArticleThumbnail(ctx, lang, title, r.opts.ThumbWidth)
}

func (r *Resolver) nearby(ctx context.Context, in lookup) (string, error) {
	return r.client.NearbyThumbnail(ctx, wikimedia.NearbyQuery{
		Lang:      r.opts.NearbyLang,
		Latitude:  in.lat,
		Longitude: in.lon,
		RadiusM:   r.opts.NearbyRadius,
		Limit:     r.opts.NearbyLimit,
		ThumbSize: r.opts.ThumbWidth,
	})
}
