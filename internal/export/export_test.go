package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/metrics"
	"genesetdocs/internal/sink"
	"genesetdocs/internal/source"
	"genesetdocs/internal/storage/storagetest"
	"genesetdocs/internal/util"
)

func openCorpus(t *testing.T) source.Source {
	t.Helper()
	db := storagetest.NewSQLite(t, storagetest.Corpus)
	hist := filepath.Join(t.TempDir(), "history.xml")
	require.NoError(t, os.WriteFile(hist, []byte(storagetest.History), 0o644))
	src, err := source.Open(context.Background(), source.Config{Kind: source.KindDB, DSN: db, HistoryPath: hist})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func quietLogger() *log.Entry {
	l, _ := test.NewNullLogger()
	return log.NewEntry(l)
}

func documentKeys(t *testing.T, s sink.Sink, dir string) []string {
	t.Helper()
	keys, err := s.List(context.Background(), dir)
	require.NoError(t, err)
	var out []string
	for stem := range sink.Stems(keys, dir, documentExt) {
		out = append(out, stem)
	}
	return out
}

func TestRunExportsEveryGeneSet(t *testing.T) {
	mem := sink.NewMemory()
	rec := metrics.NewRecorder()
	sum, err := New(mem, rec, quietLogger()).Run(context.Background(), openCorpus(t), Options{Species: "human", Dir: "human", RunID: "run-1"})
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Indexed)
	assert.Equal(t, 4, sum.Exported)
	assert.Zero(t, sum.Skipped)
	assert.Zero(t, sum.Failed)
	assert.False(t, sum.Limited)
	assert.ElementsMatch(t, []string{"SMITH_TUMOR_UP", "SMITH_TUMOR_DN", "SMITH_LIVER_2010", "HALLMARK_APOPTOSIS"}, documentKeys(t, mem, "human"))

	raw, err := mem.Get(context.Background(), "human/SMITH_TUMOR_UP.yaml")
	require.NoError(t, err)
	g, err := UnmarshalDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "SMITH_TUMOR_UP", g.StandardName)
	require.NotNil(t, g.RelatedGeneSets)
	assert.Equal(t, []string{"SMITH_TUMOR_DN"}, g.RelatedGeneSets.FromSamePublication)
	assert.Equal(t, []string{"SMITH_LIVER_2010"}, g.RelatedGeneSets.FromSameAuthors)
	assert.Equal(t, 2, g.NumMembers)

	assert.Equal(t, "human/_runs/run-1/manifest.json", sum.ManifestKey)
	manifest, err := mem.Get(context.Background(), sum.ManifestKey)
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"exported": 4`)
	_, err = mem.Get(context.Background(), "human/_runs/run-1/failures.jsonl")
	assert.ErrorIs(t, err, sink.ErrNotFound)
}

func TestRunResumeKeepsExistingDocuments(t *testing.T) {
	mem := sink.NewMemory()
	ctx := context.Background()
	sentinel := []byte("sentinel: true\n")
	require.NoError(t, mem.Put(ctx, "human/SMITH_TUMOR_UP.yaml", sentinel, sink.PutOptions{}))

	sum, err := New(mem, nil, quietLogger()).Run(ctx, openCorpus(t), Options{Species: "human", Dir: "human", Resume: true})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Exported)
	assert.Equal(t, 1, sum.Skipped)

	got, err := mem.Get(ctx, "human/SMITH_TUMOR_UP.yaml")
	require.NoError(t, err)
	assert.Equal(t, sentinel, got)
	_, err = mem.Get(ctx, "human/SMITH_TUMOR_DN.yaml")
	assert.NoError(t, err)
}

func TestRunWithoutResumeOverwrites(t *testing.T) {
	mem := sink.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, "human/SMITH_TUMOR_UP.yaml", []byte("old"), sink.PutOptions{}))

	sum, err := New(mem, nil, quietLogger()).Run(ctx, openCorpus(t), Options{Species: "human", Dir: "human"})
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Exported)
	got, err := mem.Get(ctx, "human/SMITH_TUMOR_UP.yaml")
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(got))
}

func TestRunLimitIsDeterministic(t *testing.T) {
	mem := sink.NewMemory()
	sum, err := New(mem, nil, quietLogger()).Run(context.Background(), openCorpus(t), Options{Species: "human", Dir: "human", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Exported)
	assert.True(t, sum.Limited)
	assert.ElementsMatch(t, []string{"SMITH_TUMOR_UP", "SMITH_TUMOR_DN"}, documentKeys(t, mem, "human"))
}

func TestRunWritesToFilesystem(t *testing.T) {
	root := t.TempDir()
	sum, err := New(sink.NewFS(root), nil, quietLogger()).Run(context.Background(), openCorpus(t), Options{Species: "human", Dir: "human"})
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Exported)

	raw, err := os.ReadFile(filepath.Join(root, "human", "HALLMARK_APOPTOSIS.yaml"))
	require.NoError(t, err)
	g, err := UnmarshalDocument(raw)
	require.NoError(t, err)
	require.NotNil(t, g.HallmarkInfo)
	assert.Equal(t, 3, g.NumMembers)
	assert.Equal(t, 2, g.NumGenesMapped)
}

// listSource replays fixed records over an empty catalog.
type listSource struct {
	keys    []source.Key
	records []source.Record
}

func (s *listSource) Kind() string { return "list" }

func (s *listSource) Catalog(context.Context) (*catalog.Catalog, error) { return catalog.Empty(), nil }

func (s *listSource) Keys(_ context.Context, fn func(source.Key) error) error {
	for _, k := range s.keys {
		if err := fn(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *listSource) Records(_ context.Context, fn func(source.Record) error) error {
	for _, r := range s.records {
		if err := fn(r); err != nil {
			if err == source.ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *listSource) Close() error { return nil }

func TestRunCountsPerEntityFailures(t *testing.T) {
	src := &listSource{
		keys: []source.Key{{Name: "GOOD"}, {Name: "BROKEN"}},
		records: []source.Record{
			{Order: 0, Name: "GOOD", Fields: source.Fields{source.FieldStandardName: "GOOD"}},
			{Order: 1, Name: "BROKEN", Err: util.ErrMalformedMembers},
			{Order: 2, Fields: source.Fields{source.FieldSystematicName: "M1"}},
		},
	}
	mem := sink.NewMemory()
	rec := metrics.NewRecorder()
	sum, err := New(mem, rec, quietLogger()).Run(context.Background(), src, Options{Species: "human", Dir: "out", RunID: "r"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Exported)
	assert.Equal(t, 2, sum.Failed)
	require.Len(t, sum.Failures, 2)
	assert.Equal(t, "BROKEN", sum.Failures[0].Name)
	assert.Contains(t, sum.Failures[1].Error, util.ErrMissingStandardName.Error())

	lines, err := mem.Get(context.Background(), "out/_runs/r/failures.jsonl")
	require.NoError(t, err)
	assert.Contains(t, string(lines), `"name":"BROKEN"`)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(sink.NewMemory(), nil, quietLogger()).Run(ctx, &listSource{keys: []source.Key{{Name: "A"}}}, Options{Dir: "out"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProgressLogsRateAndETA(t *testing.T) {
	l, hook := test.NewNullLogger()
	start := time.Unix(0, 0)
	now := start.Add(10 * time.Second)
	p := &progress{logger: log.NewEntry(l), every: 500, target: 2000, started: start, now: func() time.Time { return now }}

	p.observe(499)
	assert.Empty(t, hook.AllEntries())

	p.observe(1000)
	require.Len(t, hook.AllEntries(), 1)
	e := hook.LastEntry()
	assert.Equal(t, "1,000", e.Data["exported"])
	assert.Equal(t, "100.0/s", e.Data["rate"])
	assert.Equal(t, "2,000", e.Data["target"])
	assert.Equal(t, "10s", e.Data["eta"])
}
