// Package source reads gene sets out of the relational database or the XML
// dump and hands them on as raw Records in a shared field vocabulary.
//
// Every Source is read in two passes. Keys walks the corpus once so the
// caller can build the relationship index, then Records walks it again in
// the same order and yields one Record per gene set.
package source

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/models"
	"genesetdocs/internal/util"
)

const (
	KindDB  = "db"
	KindXML = "xml"
)

// ErrStop ends a Keys or Records walk early without an error.
var ErrStop = errors.New("stop iteration")

// Key is what the relationship index needs to know about one gene set.
type Key struct {
	Name           string
	PublicationKey string
	Authors        []string
}

// Record is one gene set as read from a source. When Err is set the other
// fields may be partial; Name is filled whenever it is known so the failure
// can be reported.
type Record struct {
	Order   int
	Name    string
	Fields  Fields
	Members []models.Member
	Err     error
}

type Source interface {
	Kind() string
	// Catalog builds the lookup tables for this corpus. It is called once,
	// before Keys.
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Keys(ctx context.Context, fn func(Key) error) error
	Records(ctx context.Context, fn func(Record) error) error
	Close() error
}

// Config selects and locates a source.
type Config struct {
	Kind        string
	Driver      string
	DSN         string
	XMLPath     string
	HistoryPath string
	// TmpDir receives the repaired copy of a damaged XML dump.
	TmpDir string
	Logger *log.Entry
}

// Open builds the source described by cfg.
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindDB:
		return NewSQLSource(ctx, cfg)
	case KindXML:
		return NewXMLSource(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownSource, cfg.Kind)
	}
}

func loggerOr(l *log.Entry, kind string) *log.Entry {
	if l == nil {
		l = log.NewEntry(log.StandardLogger())
	}
	return l.WithField("source", kind)
}

// stopped translates ErrStop into a clean end of iteration.
func stopped(err error) error {
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}
