package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/onrik/logrus/filename"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"genesetdocs/internal/config"
)

var (
	Quiet      bool
	Verbose    bool
	ConfigFile string

	Human  bool
	Mouse  bool
	Limit  int
	Resume bool

	SourceKind   string
	Driver       string
	DSN          string
	InputDir     string
	OutputDir    string
	HumanDB      string
	MouseDB      string
	HumanXML     string
	MouseXML     string
	HumanHistory string
	MouseHistory string
	SiteDir      string

	NoRender bool
	Wait     bool
	RunID    string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&Quiet, "quiet", "q", false, "Activate quiet log output")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Activate verbose log output")
	rootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "Path to TOML configuration file (default ~/.config/genesetdocs.toml)")

	for _, cmd := range []*cobra.Command{exportCmd, renderCmd, submitCmd} {
		cmd.Flags().BoolVar(&Human, "human", false, "Process human gene sets only")
		cmd.Flags().BoolVar(&Mouse, "mouse", false, "Process mouse gene sets only")
		cmd.Flags().IntVarP(&Limit, "limit", "l", 0, "Maximum number of documents to produce (<=0 signifies unlimited)")
		cmd.Flags().BoolVarP(&Resume, "resume", "r", false, "Skip documents that already exist in the output")
	}
	for _, cmd := range []*cobra.Command{exportCmd, submitCmd} {
		cmd.Flags().StringVarP(&SourceKind, "source", "s", "", "Source kind: db or xml")
		cmd.Flags().StringVar(&Driver, "driver", "", "Database driver: sqlite or pgx")
		cmd.Flags().StringVar(&DSN, "dsn", "", "Database DSN; replaces the per-species database files")
		cmd.Flags().StringVarP(&InputDir, "input", "i", "", "Input directory holding the release files")
		cmd.Flags().StringVarP(&OutputDir, "output", "o", "", "Output directory for YAML documents")
		cmd.Flags().StringVar(&HumanDB, "hs-db", "", "Human database file")
		cmd.Flags().StringVar(&MouseDB, "mm-db", "", "Mouse database file")
		cmd.Flags().StringVar(&HumanXML, "hs-xml", "", "Human XML dump (.xml or .xml.gz)")
		cmd.Flags().StringVar(&MouseXML, "mm-xml", "", "Mouse XML dump (.xml or .xml.gz)")
		cmd.Flags().StringVar(&HumanHistory, "hs-history-xml", "", "Human version history XML")
		cmd.Flags().StringVar(&MouseHistory, "mm-history-xml", "", "Mouse version history XML")
	}
	renderCmd.Flags().StringVarP(&OutputDir, "input", "i", "", "Directory holding the exported YAML documents")
	renderCmd.Flags().StringVarP(&SiteDir, "output", "o", "", "Directory the HTML pages are written to")
	renderCmd.Flags().StringVarP(&SourceKind, "source", "s", "", "Which export to render: db or xml")
	submitCmd.Flags().BoolVar(&NoRender, "no-render", false, "Skip the render step")
	submitCmd.Flags().BoolVarP(&Wait, "wait", "w", false, "Wait for the workflow result")
	submitCmd.Flags().StringVar(&RunID, "run-id", "", "Run id to submit under (default a new UUID); reuse it to retry a failed run")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(submitCmd)
}

func main() {
	_ = godotenv.Load(".env")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:           "genesetdocs",
	Short:         "Export gene sets to YAML documents and render them as HTML pages",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogging()
	},
}

func initLogging() {
	level := log.InfoLevel
	if Verbose {
		log.AddHook(filename.NewHook())
		level = log.DebugLevel
	}
	if Quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

// loadConfig layers the environment, the TOML file and the flags the user
// actually set, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadWithFile(ConfigFile)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = v
		}
	}
	override("source", &cfg.Source, SourceKind)
	override("driver", &cfg.Driver, Driver)
	override("dsn", &cfg.DSN, DSN)
	override("hs-db", &cfg.HumanDB, HumanDB)
	override("mm-db", &cfg.MouseDB, MouseDB)
	override("hs-xml", &cfg.HumanXML, HumanXML)
	override("mm-xml", &cfg.MouseXML, MouseXML)
	override("hs-history-xml", &cfg.HumanHistoryXML, HumanHistory)
	override("mm-history-xml", &cfg.MouseHistoryXML, MouseHistory)
	if cmd == renderCmd {
		override("input", &cfg.OutputDir, OutputDir)
		override("output", &cfg.SiteDir, SiteDir)
	} else {
		override("input", &cfg.InputDir, InputDir)
		override("output", &cfg.OutputDir, OutputDir)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
