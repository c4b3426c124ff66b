package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clawfood/clawfood/internal/model"
)

var (
	searchLat         float64
	searchLng         float64
	searchFormat      string
	searchOut         string
	searchMaxDistance float64
	searchMinRating   float64
	searchPrice       string
	searchSort        string
	searchNoEnrich    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Suggest restaurants for a craving near a location",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("search"); err != nil {
			return err
		}
		if searchNoEnrich {
			cfg.Search.Enrich = false
		}

		filters := model.Filters{
			MaxDistanceKm: searchMaxDistance,
			MinRating:     searchMinRating,
			PriceRange:    searchPrice,
			SortBy:        model.SortBy(searchSort),
		}
		if !filters.SortBy.Valid() {
			return eris.Errorf("unknown --sort %q", searchSort)
		}

		ctx := cmd.Context()
		env, err := initSearch(ctx, cfg)
		if err != nil {
			return err
		}

		lat, lng := origin(cfg, searchLat, searchLng)
		resp, err := env.Search.Search(ctx, model.SearchRequest{
			Keyword:   strings.Join(args, " "),
			Latitude:  lat,
			Longitude: lng,
			Filters:   &filters,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), resp.Message)
		return writeRestaurants(cmd.OutOrStdout(), resp.Restaurants, searchFormat, searchOut)
	},
}

func init() {
	f := searchCmd.Flags()
	f.Float64Var(&searchLat, "lat", 0, "origin latitude (default from config)")
	f.Float64Var(&searchLng, "lng", 0, "origin longitude (default from config)")
	f.StringVar(&searchFormat, "format", "json", "output format: json, yaml, xlsx")
	f.StringVarP(&searchOut, "out", "o", "", "write to file; format follows the extension")
	f.Float64Var(&searchMaxDistance, "max-distance", 0, "drop results farther than this many km")
	f.Float64Var(&searchMinRating, "min-rating", 0, "drop results rated below this")
	f.StringVar(&searchPrice, "price", "", "price tier: $, $$ or $$$")
	f.StringVar(&searchSort, "sort", string(model.SortRelevance), "relevance, rating-desc or distance-asc")
	f.BoolVar(&searchNoEnrich, "no-enrich", false, "skip photo and address lookups")
	rootCmd.AddCommand(searchCmd)
}
