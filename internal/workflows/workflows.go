package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"genesetdocs/internal/activities"
)

const (
	QueryGetProgress = "GetProgress"

	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	ResultCompleted             = "completed"
	ResultCompletedWithFailures = "completed_with_failures"
)

// GeneSetDocsWorkflow exports each species in turn and optionally renders
// the pages. A species whose corpus cannot be read is marked failed and the
// run moves on to the next one.
func GeneSetDocsWorkflow(ctx workflow.Context, input GeneSetDocsInput) (string, error) {
	if input.RunID == "" {
		input.RunID = workflow.GetInfo(ctx).WorkflowExecution.RunID
	}
	progress := GeneSetDocsProgress{
		RunID:      input.RunID,
		Stage:      "export",
		PerSpecies: map[string]SpeciesResult{},
	}
	for _, sp := range input.Species {
		progress.PerSpecies[sp] = SpeciesResult{Status: StatusPending}
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (GeneSetDocsProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 6 * time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        10 * time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        5 * time.Minute,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{activities.ErrTypeCorpus},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	failures := 0
	for _, sp := range input.Species {
		progress.PerSpecies[sp] = SpeciesResult{Status: StatusRunning}
		var out activities.ExportSpeciesOutput
		err := workflow.ExecuteActivity(ctx, "ExportSpeciesActivity", activities.ExportSpeciesInput{
			RunID:   input.RunID,
			Species: sp,
			Resume:  input.Resume,
			Limit:   input.Limit,
		}).Get(ctx, &out)
		if err != nil {
			logger.Error("species export failed", "species", sp, "error", err)
			failures++
			progress.PerSpecies[sp] = SpeciesResult{Status: StatusFailed, Error: err.Error()}
			continue
		}
		if out.Failed > 0 {
			failures++
		}
		progress.PerSpecies[sp] = SpeciesResult{
			Status:   StatusCompleted,
			Exported: out.Exported,
			Skipped:  out.Skipped,
			Failed:   out.Failed,
		}
	}

	if input.Render {
		progress.Stage = "render"
		var out activities.RenderPagesOutput
		if err := workflow.ExecuteActivity(ctx, "RenderPagesActivity", activities.RenderPagesInput{
			Species: input.Species,
			Resume:  input.Resume,
			Limit:   input.Limit,
		}).Get(ctx, &out); err != nil {
			logger.Error("render failed", "error", err)
			failures++
		} else {
			progress.Pages = out.Generated
			if out.Failed > 0 {
				failures++
			}
		}
	}

	progress.Stage = "summary"
	_ = workflow.ExecuteActivity(ctx, "WriteRunSummaryActivity", activities.WriteRunSummaryInput{
		RunID: input.RunID,
		Summary: map[string]any{
			"run_id":      input.RunID,
			"species":     progress.PerSpecies,
			"pages":       progress.Pages,
			"rendered":    input.Render,
			"resume":      input.Resume,
			"limit":       input.Limit,
			"failed_runs": failures,
		},
	}).Get(ctx, nil)

	progress.Stage = "done"
	if failures > 0 {
		return ResultCompletedWithFailures, nil
	}
	return ResultCompleted, nil
}
