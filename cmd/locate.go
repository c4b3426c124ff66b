package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	locateLat float64
	locateLng float64
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Describe a location as a short street address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("locate"); err != nil {
			return err
		}

		env := initGeodata(cfg)
		lat, lng := origin(cfg, locateLat, locateLng)
		fmt.Fprintln(cmd.OutOrStdout(), env.Locator.Locate(cmd.Context(), lat, lng))
		return nil
	},
}

func init() {
	locateCmd.Flags().Float64Var(&locateLat, "lat", 0, "latitude (default from config)")
	locateCmd.Flags().Float64Var(&locateLng, "lng", 0, "longitude (default from config)")
	rootCmd.AddCommand(locateCmd)
}
