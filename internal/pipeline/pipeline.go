// Package pipeline wires configuration to the exporter and the renderer.
// The CLI and the Temporal activities both run species through it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/config"
	"genesetdocs/internal/export"
	"genesetdocs/internal/metrics"
	"genesetdocs/internal/render"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/source"
	"genesetdocs/internal/util"
)

type Runner struct {
	cfg     config.Config
	metrics *metrics.Recorder
	logger  *log.Entry
}

func New(cfg config.Config, logger *log.Entry) *Runner {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Runner{cfg: cfg, metrics: metrics.NewRecorder(), logger: logger}
}

func (r *Runner) Config() config.Config { return r.cfg }

// Species resolves the species flags; neither flag selects both.
func Species(human, mouse bool) []string {
	switch {
	case human && !mouse:
		return []string{config.SpeciesHuman}
	case mouse && !human:
		return []string{config.SpeciesMouse}
	default:
		return []string{config.SpeciesHuman, config.SpeciesMouse}
	}
}

// ExportSpecies runs one species end to end: open the source, export, close
// the source (which drops any repaired temp copy) and write metrics.
func (r *Runner) ExportSpecies(ctx context.Context, species string, resume bool, limit int, runID string) (export.Summary, error) {
	if species != config.SpeciesHuman && species != config.SpeciesMouse {
		return export.Summary{}, fmt.Errorf("%w: %q", util.ErrUnknownSpecies, species)
	}
	logger := r.logger.WithField("species", species)
	out, err := sink.Open(ctx, r.cfg.OutputSink())
	if err != nil {
		return export.Summary{}, fmt.Errorf("open output sink: %w", err)
	}
	srcCfg := r.cfg.SourceConfig(species)
	srcCfg.Logger = logger
	start := time.Now()
	src, err := source.Open(ctx, srcCfg)
	if err != nil {
		return export.Summary{}, fmt.Errorf("open %s source for %s: %w", srcCfg.Kind, species, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.WithError(cerr).Warn("close source")
		}
	}()
	logger.WithField("open", time.Since(start).Round(time.Millisecond).String()).Debug("source opened")

	sum, err := export.New(out, r.metrics, logger).Run(ctx, src, r.cfg.ExportOptions(species, resume, limit, runID))
	if err != nil {
		return sum, fmt.Errorf("export %s: %w", species, err)
	}
	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			logger.WithError(err).Warn("metrics not written")
		}
	}
	return sum, nil
}

// Render builds pages for the given species from the exported documents.
func (r *Runner) Render(ctx context.Context, species []string, resume bool, limit int) (render.Summary, error) {
	in, err := sink.Open(ctx, r.cfg.OutputSink())
	if err != nil {
		return render.Summary{}, fmt.Errorf("open document sink: %w", err)
	}
	out, err := sink.Open(ctx, r.cfg.SiteSink())
	if err != nil {
		return render.Summary{}, fmt.Errorf("open site sink: %w", err)
	}
	rr, err := render.New(in, out, r.logger)
	if err != nil {
		return render.Summary{}, err
	}
	inputs := make([]render.Input, 0, len(species))
	for _, sp := range species {
		inputs = append(inputs, render.Input{Species: sp, Dir: r.cfg.DocumentDir(sp)})
	}
	return rr.Run(ctx, render.Options{Inputs: inputs, Resume: resume, Limit: limit})
}
