package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ExportSpeciesActivity)
	w.RegisterActivity(a.RenderPagesActivity)
	w.RegisterActivity(a.WriteRunSummaryActivity)
}
