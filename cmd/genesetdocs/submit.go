package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"genesetdocs/internal/pipeline"
	"genesetdocs/internal/workflows"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Start the export workflow on a Temporal worker",
	Long: "Start the export workflow on a Temporal worker. Source and path flags are read " +
		"from the worker's own configuration; only species, limit, resume and render travel " +
		"with the workflow.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			return fmt.Errorf("dial temporal: %w", err)
		}
		defer c.Close()

		runID := RunID
		if runID == "" {
			runID = uuid.NewString()
		}
		input := workflows.GeneSetDocsInput{
			RunID:   runID,
			Species: pipeline.Species(Human, Mouse),
			Resume:  Resume,
			Limit:   Limit,
			Render:  !NoRender,
		}
		ctx := context.Background()
		// A run id may be resubmitted after a failure, never while it runs.
		run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
			ID:                                       "genesetdocs-" + input.RunID,
			TaskQueue:                                cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
			WorkflowExecutionErrorWhenAlreadyStarted: true,
		}, workflows.GeneSetDocsWorkflow, input)
		if err != nil {
			return fmt.Errorf("start workflow: %w", err)
		}
		log.WithFields(log.Fields{"workflow_id": run.GetID(), "run_id": input.RunID}).Info("workflow started")
		if !Wait {
			return nil
		}
		var result string
		if err := run.Get(ctx, &result); err != nil {
			return fmt.Errorf("workflow %s: %w", run.GetID(), err)
		}
		log.WithField("result", result).Info("workflow finished")
		return nil
	},
}
