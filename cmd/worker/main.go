package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"genesetdocs/internal/activities"
	"genesetdocs/internal/config"
	"genesetdocs/internal/pipeline"
	"genesetdocs/internal/workflows"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := config.LoadWithFile(os.Getenv("GENESET_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	runner := pipeline.New(cfg, log.WithField("component", "worker"))
	activities.Register(w, activities.New(cfg, runner))

	log.WithFields(log.Fields{
		"temporal": cfg.TemporalAddress,
		"queue":    cfg.TemporalTaskQueue,
		"source":   cfg.Source,
		"output":   cfg.OutputDir,
	}).Info("genesetdocs worker listening")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
