package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File is the optional TOML configuration. Set values override the
// environment; empty values leave it alone.
type File struct {
	Source          string   `toml:"source"`
	Driver          string   `toml:"driver"`
	DSN             string   `toml:"dsn"`
	InputDir        string   `toml:"input_dir"`
	OutputDir       string   `toml:"output_dir"`
	SiteDir         string   `toml:"site_dir"`
	TmpDir          string   `toml:"tmp_dir"`
	HumanDB         string   `toml:"hs_db"`
	MouseDB         string   `toml:"mm_db"`
	HumanXML        string   `toml:"hs_xml"`
	MouseXML        string   `toml:"mm_xml"`
	HumanHistoryXML string   `toml:"hs_history_xml"`
	MouseHistoryXML string   `toml:"mm_history_xml"`
	RelatedExclude  []string `toml:"related_exclude"`
	MetricsFile     string   `toml:"metrics_file"`

	Sink struct {
		Driver    string `toml:"driver"`
		Bucket    string `toml:"bucket"`
		Prefix    string `toml:"prefix"`
		Region    string `toml:"region"`
		Endpoint  string `toml:"endpoint"`
		PathStyle bool   `toml:"path_style"`
	} `toml:"sink"`

	Temporal struct {
		Address   string `toml:"address"`
		TaskQueue string `toml:"task_queue"`
	} `toml:"temporal"`
}

// DefaultSearchPaths are tried in order by FindFile.
var DefaultSearchPaths = []string{
	filepath.Join(os.Getenv("HOME"), ".genesetdocs.toml"),
	filepath.Join(os.Getenv("HOME"), ".config", "genesetdocs.toml"),
}

// FindFile returns the first existing file of DefaultSearchPaths, or "".
func FindFile() (string, error) {
	for _, path := range DefaultSearchPaths {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

func ParseFile(path string) (*File, error) {
	f := &File{}
	if _, err := toml.DecodeFile(path, f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

func (f *File) Apply(c *Config) {
	set(&c.Source, f.Source)
	set(&c.Driver, f.Driver)
	set(&c.DSN, f.DSN)
	set(&c.InputDir, f.InputDir)
	set(&c.OutputDir, f.OutputDir)
	set(&c.SiteDir, f.SiteDir)
	set(&c.TmpDir, f.TmpDir)
	set(&c.HumanDB, f.HumanDB)
	set(&c.MouseDB, f.MouseDB)
	set(&c.HumanXML, f.HumanXML)
	set(&c.MouseXML, f.MouseXML)
	set(&c.HumanHistoryXML, f.HumanHistoryXML)
	set(&c.MouseHistoryXML, f.MouseHistoryXML)
	set(&c.MetricsFile, f.MetricsFile)
	set(&c.SinkDriver, f.Sink.Driver)
	set(&c.S3Bucket, f.Sink.Bucket)
	set(&c.S3Prefix, f.Sink.Prefix)
	set(&c.S3Region, f.Sink.Region)
	set(&c.S3Endpoint, f.Sink.Endpoint)
	set(&c.TemporalAddress, f.Temporal.Address)
	set(&c.TemporalTaskQueue, f.Temporal.TaskQueue)
	if f.Sink.PathStyle {
		c.S3PathStyle = true
	}
	if len(f.RelatedExclude) > 0 {
		c.RelatedExclude = append([]string(nil), f.RelatedExclude...)
	}
}

// LoadWithFile loads the environment and then applies path, or the first
// file found on DefaultSearchPaths when path is empty.
func LoadWithFile(path string) (Config, error) {
	cfg := Load()
	if path == "" {
		found, err := FindFile()
		if err != nil {
			return cfg, fmt.Errorf("locate config file: %w", err)
		}
		path = found
	}
	if path == "" {
		return cfg, nil
	}
	f, err := ParseFile(path)
	if err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	return cfg, nil
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
