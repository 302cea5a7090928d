package activities

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"genesetdocs/internal/config"
	"genesetdocs/internal/pipeline"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/util"
)

// ErrTypeCorpus marks species failures that a retry cannot fix.
const ErrTypeCorpus = "CorpusError"

var corpusErrors = []error{
	util.ErrCorpusParse,
	util.ErrCorpusMissing,
	util.ErrUnknownSpecies,
	util.ErrUnknownSource,
	util.ErrUnknownDriver,
}

// isCorpusError reports whether err comes from the inputs or the
// configuration rather than from a database, sink or network call.
func isCorpusError(err error) bool {
	for _, target := range corpusErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type Activities struct {
	cfg    config.Config
	runner *pipeline.Runner
}

func New(cfg config.Config, runner *pipeline.Runner) *Activities {
	return &Activities{cfg: cfg, runner: runner}
}

func (a *Activities) ExportSpeciesActivity(ctx context.Context, in ExportSpeciesInput) (ExportSpeciesOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("exporting species", "species", in.Species, "run_id", in.RunID)
	sum, err := a.runner.ExportSpecies(ctx, in.Species, in.Resume, in.Limit, in.RunID)
	if err != nil {
		if ctx.Err() == nil && isCorpusError(err) {
			return ExportSpeciesOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCorpus, err)
		}
		return ExportSpeciesOutput{}, err
	}
	return ExportSpeciesOutput{
		Species:     sum.Species,
		Source:      sum.Source,
		Dir:         sum.Dir,
		Exported:    sum.Exported,
		Skipped:     sum.Skipped,
		Failed:      sum.Failed,
		Limited:     sum.Limited,
		ManifestKey: sum.ManifestKey,
		DurationMS:  sum.Duration().Milliseconds(),
	}, nil
}

func (a *Activities) RenderPagesActivity(ctx context.Context, in RenderPagesInput) (RenderPagesOutput, error) {
	sum, err := a.runner.Render(ctx, in.Species, in.Resume, in.Limit)
	if err != nil {
		return RenderPagesOutput{}, err
	}
	return RenderPagesOutput{
		Generated:  sum.Generated,
		Skipped:    sum.Skipped,
		Failed:     sum.Failed,
		PerSpecies: sum.PerSpecies,
	}, nil
}

func (a *Activities) WriteRunSummaryActivity(ctx context.Context, in WriteRunSummaryInput) (WriteRunSummaryOutput, error) {
	out, err := sink.Open(ctx, a.cfg.OutputSink())
	if err != nil {
		return WriteRunSummaryOutput{}, err
	}
	b, err := util.EncodeJSON(in.Summary)
	if err != nil {
		return WriteRunSummaryOutput{}, err
	}
	key := sink.Join("_runs", in.RunID, "workflow.json")
	if err := out.Put(ctx, key, b, sink.PutOptions{ContentType: "application/json"}); err != nil {
		return WriteRunSummaryOutput{}, err
	}
	return WriteRunSummaryOutput{Key: key}, nil
}
