package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genesetdocs/internal/storage"
	"genesetdocs/internal/storage/storagetest"
	"genesetdocs/internal/util"
)

func TestNewDBMissingSQLiteFile(t *testing.T) {
	_, err := storage.NewDB(context.Background(), storage.DriverSQLite, filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, err, util.ErrCorpusMissing)
}

func TestNewDBUnknownDriver(t *testing.T) {
	_, err := storage.NewDB(context.Background(), "oracle", "x")
	assert.ErrorIs(t, err, util.ErrUnknownDriver)
}

func TestNewDBOpensFixture(t *testing.T) {
	db, err := storage.NewDB(context.Background(), "", storagetest.NewSQLite(t, storagetest.Corpus))
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, storage.DriverSQLite, db.Driver())
	assert.Equal(t, "SELECT 1 WHERE a = ?", db.Rebind("SELECT 1 WHERE a = ?"))
}
