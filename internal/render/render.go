// Package render turns exported gene set documents into static HTML detail
// pages.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sort"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/export"
	"genesetdocs/internal/models"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/util"
)

const (
	SpeciesHuman = "human"
	SpeciesMouse = "mouse"

	pageDir         = "geneset"
	pageExt         = ".html"
	documentExt     = ".yaml"
	progressEvery   = 100
	pageContentType = "text/html; charset=utf-8"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Input names where one species' documents live in the input sink.
type Input struct {
	Species string
	Dir     string
}

type Options struct {
	Inputs []Input
	Resume bool
	// Limit caps generated pages across all inputs. Zero means no limit.
	Limit int
}

type Summary struct {
	Generated  int
	Skipped    int
	Failed     int
	PerSpecies map[string]int
}

type Renderer struct {
	in     sink.Sink
	out    sink.Sink
	tpl    *template.Template
	logger *log.Entry
}

// New reads documents from in and writes pages to out.
func New(in, out sink.Sink, logger *log.Entry) (*Renderer, error) {
	tpl, err := template.New("geneset.html.tmpl").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Renderer{in: in, out: out, tpl: tpl, logger: logger}, nil
}

// Page renders the detail page of one gene set.
func (r *Renderer) Page(g models.GeneSet, species string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, newPage(g, species)); err != nil {
		return nil, fmt.Errorf("render %s: %w", g.StandardName, err)
	}
	return buf.Bytes(), nil
}

// PageKey is where the page of a gene set is stored.
func PageKey(species, name string) string {
	return sink.Join(species, pageDir, util.FileStem(name)+pageExt)
}

// Run renders every document of every input in order. Inputs after the one
// that reaches the limit are not read.
func (r *Renderer) Run(ctx context.Context, opts Options) (Summary, error) {
	sum := Summary{PerSpecies: map[string]int{}}
	for _, in := range opts.Inputs {
		if opts.Limit > 0 && sum.Generated >= opts.Limit {
			break
		}
		if err := r.runInput(ctx, in, opts, &sum); err != nil {
			return sum, fmt.Errorf("render %s: %w", in.Species, err)
		}
	}
	r.logger.WithFields(log.Fields{
		"generated": sum.Generated,
		"skipped":   sum.Skipped,
		"failed":    sum.Failed,
	}).Info("render finished")
	return sum, nil
}

func (r *Renderer) runInput(ctx context.Context, in Input, opts Options, sum *Summary) error {
	logger := r.logger.WithFields(log.Fields{"species": in.Species, "input": in.Dir})
	keys, err := r.in.List(ctx, in.Dir)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	stems := sortedStems(sink.Stems(keys, in.Dir, documentExt))
	if len(stems) == 0 {
		logger.Warn("no documents found")
		return nil
	}

	existing := map[string]struct{}{}
	if opts.Resume {
		dir := sink.Join(in.Species, pageDir)
		pages, err := r.out.List(ctx, dir)
		if err != nil {
			return fmt.Errorf("list pages: %w", err)
		}
		existing = sink.Stems(pages, dir, pageExt)
	}

	logger.WithField("documents", len(stems)).Info("rendering gene set pages")
	for _, stem := range stems {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := r.in.Get(ctx, sink.Join(in.Dir, stem+documentExt))
		if err != nil {
			return fmt.Errorf("read document %s: %w", stem, err)
		}
		g, err := export.UnmarshalDocument(raw)
		if err != nil {
			sum.Failed++
			logger.WithError(err).WithField("document", stem).Warn("document not rendered")
			continue
		}
		if g.StandardName == "" {
			g.StandardName = stem
		}
		if _, ok := existing[util.FileStem(g.StandardName)]; ok {
			sum.Skipped++
			continue
		}
		html, err := r.Page(g, in.Species)
		if err != nil {
			sum.Failed++
			logger.WithError(err).WithField("document", stem).Warn("document not rendered")
			continue
		}
		if err := r.out.Put(ctx, PageKey(in.Species, g.StandardName), html, sink.PutOptions{ContentType: pageContentType}); err != nil {
			return fmt.Errorf("write page %s: %w", g.StandardName, err)
		}
		sum.Generated++
		sum.PerSpecies[in.Species]++
		if opts.Limit > 0 && sum.Generated >= opts.Limit {
			return nil
		}
		if sum.Generated%progressEvery == 0 {
			logger.WithField("generated", sum.Generated).Info("render progress")
		}
	}
	return nil
}

func sortedStems(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
