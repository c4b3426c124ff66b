package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clawfood/clawfood/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "clawfood",
	Short: "Location-aware restaurant discovery",
	Long:  "Suggests restaurants for a craving near a location, then attaches photos, addresses and map links from OpenStreetMap, Wikidata, Wikimedia Commons and Wikipedia.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
