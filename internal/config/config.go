package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"genesetdocs/internal/export"
	"genesetdocs/internal/render"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/source"
	"genesetdocs/internal/storage"
)

const (
	SpeciesHuman = render.SpeciesHuman
	SpeciesMouse = render.SpeciesMouse

	release = "v2025.1"
)

type Config struct {
	Source    string
	Driver    string
	DSN       string
	InputDir  string
	OutputDir string
	SiteDir   string
	TmpDir    string

	HumanDB         string
	MouseDB         string
	HumanXML        string
	MouseXML        string
	HumanHistoryXML string
	MouseHistoryXML string

	RelatedExclude []string

	SinkDriver  string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	MetricsFile string

	TemporalAddress   string
	TemporalTaskQueue string
}

func Load() Config {
	return Config{
		Source:            getenv("GENESET_SOURCE", source.KindDB),
		Driver:            getenv("GENESET_DB_DRIVER", storage.DriverSQLite),
		DSN:               getenv("GENESET_DSN", ""),
		InputDir:          getenv("GENESET_INPUT_DIR", "inputs"),
		OutputDir:         getenv("GENESET_OUTPUT_DIR", "outputs"),
		SiteDir:           getenv("GENESET_SITE_DIR", "msigdb"),
		TmpDir:            getenv("GENESET_TMP_DIR", os.TempDir()),
		HumanDB:           getenv("GENESET_HS_DB", ""),
		MouseDB:           getenv("GENESET_MM_DB", ""),
		HumanXML:          getenv("GENESET_HS_XML", ""),
		MouseXML:          getenv("GENESET_MM_XML", ""),
		HumanHistoryXML:   getenv("GENESET_HS_HISTORY_XML", ""),
		MouseHistoryXML:   getenv("GENESET_MM_HISTORY_XML", ""),
		RelatedExclude:    getenvList("GENESET_RELATED_EXCLUDE"),
		SinkDriver:        getenv("GENESET_SINK", string(sink.DriverFS)),
		S3Bucket:          getenv("GENESET_S3_BUCKET", ""),
		S3Prefix:          getenv("GENESET_S3_PREFIX", ""),
		S3Region:          getenv("GENESET_S3_REGION", ""),
		S3Endpoint:        getenv("GENESET_S3_ENDPOINT", ""),
		S3PathStyle:       getenvBool("GENESET_S3_PATH_STYLE", false),
		MetricsFile:       getenv("GENESET_METRICS_FILE", ""),
		TemporalAddress:   getenv("GENESET_TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue: getenv("GENESET_TEMPORAL_TASK_QUEUE", "genesetdocs"),
	}
}

// Validate rejects combinations no run can start from.
func (c Config) Validate() error {
	switch c.Source {
	case source.KindDB, source.KindXML:
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, source.KindDB, source.KindXML)
	}
	switch c.Driver {
	case storage.DriverSQLite, storage.DriverPgx:
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}
	if sink.Driver(c.SinkDriver) == sink.DriverS3 && c.S3Bucket == "" {
		return fmt.Errorf("sink %q needs GENESET_S3_BUCKET", c.SinkDriver)
	}
	return nil
}

// DocumentDir is the directory documents of one species are written to and
// rendered from: "human" for the database, "human-xml" for the XML dump.
func (c Config) DocumentDir(species string) string {
	if c.Source == source.KindXML {
		return species + "-xml"
	}
	return species
}

// SourceConfig locates the input of one species. Unset paths fall back to
// the release file names under InputDir. A DSN, when set, replaces the
// per-species database path.
func (c Config) SourceConfig(species string) source.Config {
	abbr, db, xml, hist := "Hs", c.HumanDB, c.HumanXML, c.HumanHistoryXML
	if species == SpeciesMouse {
		abbr, db, xml, hist = "Mm", c.MouseDB, c.MouseXML, c.MouseHistoryXML
	}
	return source.Config{
		Kind:        c.Source,
		Driver:      c.Driver,
		DSN:         or(c.DSN, or(db, c.inputFile("msigdb_FULL_"+release+"."+abbr+".db"))),
		XMLPath:     or(xml, c.inputFile("msigdb_"+release+"."+abbr+".xml")),
		HistoryPath: or(hist, c.inputFile("msigdb_history_"+release+"."+abbr+".xml")),
		TmpDir:      c.TmpDir,
	}
}

// ExportOptions builds the exporter options of one species run.
func (c Config) ExportOptions(species string, resume bool, limit int, runID string) export.Options {
	return export.Options{
		Species: species,
		Dir:     c.DocumentDir(species),
		Resume:  resume,
		Limit:   limit,
		RunID:   runID,
		Exclude: c.RelatedExclude,
	}
}

func (c Config) OutputSink() sink.Config {
	return c.sinkAt(c.OutputDir, c.S3Prefix)
}

func (c Config) SiteSink() sink.Config {
	return c.sinkAt(c.SiteDir, strings.Trim(c.S3Prefix+"/site", "/"))
}

func (c Config) sinkAt(root, prefix string) sink.Config {
	return sink.Config{
		Driver:    sink.Driver(c.SinkDriver),
		Root:      root,
		Bucket:    c.S3Bucket,
		Prefix:    prefix,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		PathStyle: c.S3PathStyle,
	}
}

func (c Config) inputFile(name string) string {
	return filepath.Join(c.InputDir, name)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvList(k string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(k), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
