package main

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/config"
	"github.com/clawfood/clawfood/internal/enrich"
	"github.com/clawfood/clawfood/internal/llm"
	"github.com/clawfood/clawfood/internal/photo"
	"github.com/clawfood/clawfood/internal/places"
	"github.com/clawfood/clawfood/internal/resilience"
	"github.com/clawfood/clawfood/internal/suggest"
	"github.com/clawfood/clawfood/pkg/nominatim"
	"github.com/clawfood/clawfood/pkg/wikimedia"
)

// appEnv holds the wired services shared by the commands. One throttle is
// created per process and every geocoder caller goes through it.
type appEnv struct {
	Throttle *resilience.Throttle
	Enricher *enrich.Enricher
	Locator  *places.Locator
	Search   *suggest.Service // nil unless built with initSearch
}

// initGeodata wires the geocoder, photo sources and enricher.
func initGeodata(c *config.Config) *appEnv {
	hc := &http.Client{Timeout: c.Geodata.Timeout()}

	geocoder := nominatim.NewClient(
		nominatim.WithBaseURL(c.Geodata.NominatimURL),
		nominatim.WithHTTPClient(hc),
		nominatim.WithUserAgent(c.Geodata.UserAgent),
		nominatim.WithAcceptLanguage(c.Geodata.AcceptLanguage),
	)
	wiki := wikimedia.NewClient(
		wikimedia.WithWikidataURL(c.Geodata.WikidataURL),
		wikimedia.WithCommonsURL(c.Geodata.CommonsURL),
		wikimedia.WithWikipediaURL(c.Geodata.WikipediaURL),
		wikimedia.WithHTTPClient(hc),
		wikimedia.WithUserAgent(c.Geodata.UserAgent),
	)

	throttle := resilience.NewThrottle(c.Geodata.MinInterval())
	placeResolver := places.NewResolver(geocoder, places.WithViewboxDelta(c.Geodata.ViewboxDelta))
	photoResolver := photo.NewResolver(wiki, photo.Options{
		ThumbWidth:   c.Geodata.ThumbWidth,
		NearbyRadius: c.Geodata.NearbyRadius,
		NearbyLimit:  c.Geodata.NearbyLimit,
		NearbyLang:   c.Geodata.NearbyLang,
	})

	return &appEnv{
		Throttle: throttle,
		Enricher: enrich.New(throttle, placeResolver, photoResolver),
		Locator:  places.NewLocator(geocoder, throttle),
	}
}

// initSearch wires the geodata services plus the suggestion service. A
// missing API key is not an error: searches then serve the mock list.
func initSearch(ctx context.Context, c *config.Config) (*appEnv, error) {
	env := initGeodata(c)

	client, err := llm.New(ctx, c.LLM)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		zap.L().Warn("no LLM API key configured, searches return sample data",
			zap.String("provider", c.LLM.Provider),
		)
		client = nil
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = c.LLM.RetryAttempts

	var enricher suggest.Enricher
	if c.Search.Enrich {
		enricher = env.Enricher
	}

	env.Search = suggest.NewService(client, enricher, suggest.Options{
		Count:            c.Search.ResultCount,
		DefaultLatitude:  c.Search.DefaultLatitude,
		DefaultLongitude: c.Search.DefaultLongitude,
		Retry:            retry,
	})
	return env, nil
}

// origin falls back to the configured default when no coordinates are given.
func origin(c *config.Config, lat, lon float64) (float64, float64) {
	if lat == 0 && lon == 0 {
		return c.Search.DefaultLatitude, c.Search.DefaultLongitude
	}
	return lat, lon
}
