package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/export"
	"github.com/clawfood/clawfood/internal/suggest"
)

var (
	enrichLat    float64
	enrichLng    float64
	enrichFormat string
	enrichOut    string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <file>",
	Short: "Attach photos, addresses and map links to a restaurant list",
	Long:  "Reads restaurants from a .json, .yaml or .xlsx file and runs them through the enrichment pipeline. Lookups are spaced at least the configured geocoder interval apart.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		restaurants, err := export.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		env := initGeodata(cfg)
		lat, lng := origin(cfg, enrichLat, enrichLng)

		zap.L().Info("enriching restaurants",
			zap.Int("count", len(restaurants)),
			zap.Duration("min_spacing", env.Throttle.Interval()),
		)

		suggest.Prepare(restaurants, lat, lng)
		enriched := env.Enricher.Enrich(cmd.Context(), restaurants, lat, lng)

		return writeRestaurants(cmd.OutOrStdout(), enriched, enrichFormat, enrichOut)
	},
}

func init() {
	f := enrichCmd.Flags()
	f.Float64Var(&enrichLat, "lat", 0, "origin latitude (default from config)")
	f.Float64Var(&enrichLng, "lng", 0, "origin longitude (default from config)")
	f.StringVar(&enrichFormat, "format", "json", "output format: json, yaml, xlsx")
	f.StringVarP(&enrichOut, "out", "o", "", "write to file; format follows the extension")
	rootCmd.AddCommand(enrichCmd)
}
