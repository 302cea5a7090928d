// Package export runs one species through a source and writes one YAML
// document per gene set to a sink.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/metrics"
	"genesetdocs/internal/normalize"
	"genesetdocs/internal/relations"
	"genesetdocs/internal/sanitize"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/source"
	"genesetdocs/internal/util"
)

const (
	documentExt         = ".yaml"
	documentContentType = "application/yaml"
	runsDir             = "_runs"
)

type Options struct {
	// Species labels logs, metrics and the manifest, e.g. "human".
	Species string
	// Dir is the sink directory the documents go to, e.g. "human-xml".
	Dir    string
	Resume bool
	// Limit caps the number of documents exported in this run. Zero means
	// no limit. Skipped and failed records do not count.
	Limit int
	RunID string
	// Exclude lists gene set names never reported as related by publication.
	Exclude []string
}

// Failure is one gene set that could not be exported.
type Failure struct {
	Order int    `json:"order"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

type Summary struct {
	RunID       string           `json:"run_id"`
	Species     string           `json:"species"`
	Source      string           `json:"source"`
	Dir         string           `json:"dir"`
	Indexed     int              `json:"indexed"`
	Exported    int              `json:"exported"`
	Skipped     int              `json:"skipped"`
	Failed      int              `json:"failed"`
	Limited     bool             `json:"limited"`
	Resume      bool             `json:"resume"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Sanitize    *sanitize.Report `json:"sanitize,omitempty"`
	Failures    []Failure        `json:"-"`
	ManifestKey string           `json:"-"`
}

func (s Summary) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

// sanitizeReporter is implemented by sources that repair their input.
type sanitizeReporter interface {
	SanitizeReport() sanitize.Report
}

type Exporter struct {
	sink          sink.Sink
	metrics       *metrics.Recorder
	logger        *log.Entry
	ProgressEvery int
	now           func() time.Time
}

// New builds an exporter writing to s. rec and logger may be nil.
func New(s sink.Sink, rec *metrics.Recorder, logger *log.Entry) *Exporter {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Exporter{
		sink:          s,
		metrics:       rec,
		logger:        logger,
		ProgressEvery: DefaultProgressEvery,
		now:           time.Now,
	}
}

// Run exports every gene set src yields. Errors for single gene sets are
// logged and counted in the summary; a returned error means the corpus as
// a whole could not be read and the species run was abandoned.
func (e *Exporter) Run(ctx context.Context, src source.Source, opts Options) (Summary, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	sum := Summary{
		RunID:     opts.RunID,
		Species:   opts.Species,
		Source:    src.Kind(),
		Dir:       opts.Dir,
		Resume:    opts.Resume,
		StartedAt: e.now().UTC(),
	}
	logger := e.logger.WithFields(log.Fields{"species": opts.Species, "source": src.Kind(), "run_id": opts.RunID})
	if r, ok := src.(sanitizeReporter); ok {
		rep := r.SanitizeReport()
		sum.Sanitize = &rep
	}

	cat, err := src.Catalog(ctx)
	if err != nil {
		return sum, fmt.Errorf("load catalog: %w", err)
	}

	builder := relations.NewBuilder(opts.Exclude)
	if err := src.Keys(ctx, func(k source.Key) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		builder.Add(k.Name, k.PublicationKey, k.Authors)
		return nil
	}); err != nil {
		return sum, fmt.Errorf("index pass: %w", err)
	}
	idx := builder.Build()
	sum.Indexed = idx.Len()
	logger.WithFields(log.Fields{
		"gene_sets":    idx.Len(),
		"publications": idx.Publications(),
		"authors":      idx.Authors(),
	}).Info("relationship index built")

	existing := map[string]struct{}{}
	if opts.Resume {
		keys, err := e.sink.List(ctx, opts.Dir)
		if err != nil {
			return sum, fmt.Errorf("list existing documents: %w", err)
		}
		existing = sink.Stems(keys, opts.Dir, documentExt)
		logger.WithField("existing", counts.Sprintf("%d", len(existing))).Info("resume: skipping existing documents")
	}

	target := idx.Len()
	if opts.Limit > 0 && opts.Limit < target {
		target = opts.Limit
	}
	prog := &progress{logger: logger, every: e.ProgressEvery, target: target, started: e.now(), now: e.now}
	norm := normalize.New(cat, idx)

	err = src.Records(ctx, func(rec source.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stem := util.FileStem(rec.Name)
		if rec.Name != "" {
			if _, ok := existing[stem]; ok {
				sum.Skipped++
				e.count(opts.Species, src.Kind(), metrics.OutcomeSkipped)
				return nil
			}
		}
		if err := e.exportOne(ctx, norm, rec, opts.Dir); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sum.Failed++
			sum.Failures = append(sum.Failures, Failure{Order: rec.Order, Name: rec.Name, Error: err.Error()})
			e.count(opts.Species, src.Kind(), metrics.OutcomeFailed)
			logger.WithError(err).WithFields(log.Fields{"gene_set": rec.Name, "order": rec.Order}).Warn("gene set not exported")
			return nil
		}
		sum.Exported++
		e.count(opts.Species, src.Kind(), metrics.OutcomeExported)
		prog.observe(sum.Exported)
		if opts.Limit > 0 && sum.Exported >= opts.Limit {
			sum.Limited = true
			return source.ErrStop
		}
		return nil
	})
	sum.FinishedAt = e.now().UTC()
	if e.metrics != nil {
		e.metrics.Finish(opts.Species, src.Kind(), sum.Duration(), sum.FinishedAt)
	}
	if err != nil && !errors.Is(err, source.ErrStop) {
		return sum, fmt.Errorf("records pass: %w", err)
	}

	if err := e.writeManifest(ctx, &sum); err != nil {
		return sum, err
	}
	logger.WithFields(log.Fields{
		"exported": counts.Sprintf("%d", sum.Exported),
		"skipped":  counts.Sprintf("%d", sum.Skipped),
		"failed":   counts.Sprintf("%d", sum.Failed),
		"elapsed":  sum.Duration().Round(time.Millisecond).String(),
	}).Info("export finished")
	return sum, nil
}

func (e *Exporter) exportOne(ctx context.Context, norm *normalize.Normalizer, rec source.Record, dir string) error {
	g, err := norm.Normalize(rec)
	if err != nil {
		return err
	}
	doc, err := MarshalDocument(g)
	if err != nil {
		return err
	}
	key := sink.Join(dir, util.FileStem(g.StandardName)+documentExt)
	return e.sink.Put(ctx, key, doc, sink.PutOptions{
		ContentType: documentContentType,
		Metadata:    map[string]string{"sha256": util.SHA256Hex(doc)},
	})
}

// writeManifest stores the run summary and, when there were failures, one
// JSON line per failed gene set next to it.
func (e *Exporter) writeManifest(ctx context.Context, sum *Summary) error {
	base := sink.Join(sum.Dir, runsDir, sum.RunID)
	if len(sum.Failures) > 0 {
		lines, err := util.EncodeJSONLines(sum.Failures)
		if err != nil {
			return err
		}
		if err := e.sink.Put(ctx, base+"/failures.jsonl", lines, sink.PutOptions{ContentType: "application/x-ndjson"}); err != nil {
			return fmt.Errorf("write failures: %w", err)
		}
	}
	b, err := util.EncodeJSON(sum)
	if err != nil {
		return err
	}
	key := base + "/manifest.json"
	if err := e.sink.Put(ctx, key, b, sink.PutOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	sum.ManifestKey = key
	return nil
}

func (e *Exporter) count(species, kind string, o metrics.Outcome) {
	if e.metrics != nil {
		e.metrics.Inc(species, kind, o)
	}
}
