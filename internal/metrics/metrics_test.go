package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()
	r.Inc("human", "db", OutcomeExported)
	r.Inc("human", "db", OutcomeExported)
	r.Inc("human", "db", OutcomeFailed)
	r.Inc("mouse", "xml", OutcomeSkipped)

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, "genesetdocs_documents_total", families[0].GetName())

	got := map[string]float64{}
	for _, m := range families[0].GetMetric() {
		key := ""
		for _, lp := range m.GetLabel() {
			key += lp.GetValue() + "/"
		}
		got[key] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"exported/db/human/": 2,
		"failed/db/human/":   1,
		"skipped/xml/mouse/": 1,
	}, got)
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Inc("human", "db", OutcomeExported)
	r.Finish("human", "db", 1500*time.Millisecond, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "genesetdocs.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, `genesetdocs_documents_total{outcome="exported",source="db",species="human"} 1`)
	assert.Contains(t, text, `genesetdocs_run_duration_seconds{source="db",species="human"} 1.5`)
	assert.Contains(t, text, `genesetdocs_last_run_timestamp_seconds{source="db",species="human"} 1.7e+09`)
}
