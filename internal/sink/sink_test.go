package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genesetdocs/internal/util"
)

func exerciseSink(t *testing.T, s Sink) {
	t.Helper()
	ctx := context.Background()

	keys, err := s.List(ctx, "human/")
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.Put(ctx, "human/B.yaml", []byte("b: 1\n"), PutOptions{ContentType: "application/yaml"}))
	require.NoError(t, s.Put(ctx, "human/A.yaml", []byte("a: 1\n"), PutOptions{}))
	require.NoError(t, s.Put(ctx, "human/_runs/r1.json", []byte("{}\n"), PutOptions{}))
	require.NoError(t, s.Put(ctx, "mouse/C.yaml", []byte("c: 1\n"), PutOptions{}))
	require.NoError(t, s.Put(ctx, "human/A.yaml", []byte("a: 2\n"), PutOptions{}))

	b, err := s.Get(ctx, "human/A.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(b))

	_, err = s.Get(ctx, "human/MISSING.yaml")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err = s.List(ctx, "human/")
	require.NoError(t, err)
	assert.Equal(t, []string{"human/A.yaml", "human/B.yaml", "human/_runs/r1.json"}, keys)

	stems := Stems(keys, "human", ".yaml")
	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}}, stems)

	assert.Error(t, s.Put(ctx, "../escape.yaml", []byte("x"), PutOptions{}))
}

func TestFSSink(t *testing.T) {
	root := t.TempDir()
	s := NewFS(root)
	exerciseSink(t, s)

	b, err := os.ReadFile(filepath.Join(root, "mouse", "C.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "c: 1\n", string(b))
}

func TestFSSinkIgnoresInterruptedWrites(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "human"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "human", ".tmp-123"), []byte("partial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "human", "X.yaml"), []byte("x: 1\n"), 0o644))

	keys, err := NewFS(root).List(context.Background(), "human")
	require.NoError(t, err)
	assert.Equal(t, []string{"human/X.yaml"}, keys)
}

func TestMemorySink(t *testing.T) {
	s := NewMemory()
	exerciseSink(t, s)
	assert.Equal(t, 5, s.Puts())
}

func TestS3Sink(t *testing.T) {
	s, _ := newMockS3(t, "exports")
	exerciseSink(t, s)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "ftp"})
	assert.ErrorIs(t, err, util.ErrUnknownDriver)

	s, err := Open(context.Background(), Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFS, s.Driver())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "human/_runs/x.json", Join("human", "_runs", "x.json"))
	assert.Equal(t, "a.yaml", Join("", "a.yaml"))
}
