package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"genesetdocs/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render exported YAML documents as static HTML gene set pages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()

		sum, err := pipeline.New(cfg, log.NewEntry(log.StandardLogger())).Render(ctx, pipeline.Species(Human, Mouse), Resume, Limit)
		if err != nil {
			return err
		}
		printRenderSummary(os.Stdout, sum, cfg.SiteDir)
		return nil
	},
}
