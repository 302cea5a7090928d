package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"genesetdocs/internal/export"
	"genesetdocs/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export gene sets from the database or the XML dump to YAML documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()

		runner := pipeline.New(cfg, log.NewEntry(log.StandardLogger()))
		runID := uuid.NewString()
		var (
			summaries []export.Summary
			failed    []string
		)
		// Each species gets the full limit.
		for _, species := range pipeline.Species(Human, Mouse) {
			sum, err := runner.ExportSpecies(ctx, species, Resume, Limit, runID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.WithError(err).WithField("species", species).Error("species export failed")
				failed = append(failed, species)
				continue
			}
			summaries = append(summaries, sum)
		}
		printExportSummary(os.Stdout, summaries, failed)
		if len(failed) > 0 {
			return errors.New("one or more species failed")
		}
		return nil
	},
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
