package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/storage"
	"genesetdocs/internal/util"
)

// SQLSource reads gene sets from the relational database. Reference tables
// are loaded once by Catalog; after that each gene set costs two queries,
// one for its row and one for its members.
type SQLSource struct {
	db          *storage.DB
	genesets    *storage.GeneSetRepo
	lookups     *storage.LookupRepo
	historyPath string
	logger      *log.Entry

	loaded    bool
	keys      []storage.GeneSetKey
	authorIDs map[string][]string
	filtered  map[int64][]string
	hallmarks map[int64]storage.HallmarkRow
}

func NewSQLSource(ctx context.Context, cfg Config) (*SQLSource, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db source: %w: no database configured", util.ErrCorpusMissing)
	}
	db, err := storage.NewDB(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("db source: %w", err)
	}
	return newSQLSource(db, cfg), nil
}

func newSQLSource(db *storage.DB, cfg Config) *SQLSource {
	return &SQLSource{
		db:          db,
		genesets:    storage.NewGeneSetRepo(db),
		lookups:     storage.NewLookupRepo(db),
		historyPath: cfg.HistoryPath,
		logger:      loggerOr(cfg.Logger, KindDB).WithField("driver", db.Driver()),
	}
}

func (s *SQLSource) Kind() string { return KindDB }

// Catalog preloads every reference table and the list of exportable gene
// sets.
func (s *SQLSource) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	var (
		t   catalog.Tables
		err error
	)
	if t.Species, err = s.lookups.Species(ctx); err != nil {
		return nil, err
	}
	if t.Collections, err = s.lookups.Collections(ctx); err != nil {
		return nil, err
	}
	if t.Namespaces, err = s.lookups.Namespaces(ctx); err != nil {
		return nil, err
	}
	if t.Publications, err = s.lookups.Publications(ctx); err != nil {
		return nil, err
	}
	if t.ExternalTerms, err = s.lookups.ExternalTerms(ctx); err != nil {
		return nil, err
	}
	if err := s.preload(ctx); err != nil {
		return nil, err
	}
	if t.History, err = loadHistoryOrEmpty(ctx, s.historyPath, s.logger); err != nil {
		return nil, err
	}
	c := catalog.New(t)
	s.logger.WithFields(log.Fields{
		"elapsed":   time.Since(start).Round(time.Millisecond),
		"gene_sets": len(s.keys),
		"hallmarks": len(s.hallmarks),
	}).WithFields(statsFields(c.Stats())).Info("preloaded reference data")
	return c, nil
}

func (s *SQLSource) preload(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	var err error
	if s.keys, err = s.genesets.ListKeys(ctx); err != nil {
		return err
	}
	excluded, err := s.genesets.CountExcluded(ctx)
	if err != nil {
		return err
	}
	if excluded > 0 {
		s.logger.WithField("excluded", excluded).Infof("skipping gene sets with %s archive policy", storage.PolicyThresholdExcluded)
	}
	if s.authorIDs, err = s.lookups.AuthorIDsByPublication(ctx); err != nil {
		return err
	}
	if s.filtered, err = s.lookups.FilteredBySimilarity(ctx); err != nil {
		return err
	}
	if s.hallmarks, err = s.lookups.Hallmarks(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Keys reports publication ids as publication keys and author ids as author
// identities.
func (s *SQLSource) Keys(ctx context.Context, fn func(Key) error) error {
	if err := s.preload(ctx); err != nil {
		return err
	}
	for _, k := range s.keys {
		pub := storage.IDString(k.PublicationID)
		err := fn(Key{Name: k.StandardName, PublicationKey: pub, Authors: s.authorIDs[pub]})
		if err != nil {
			return stopped(err)
		}
	}
	return nil
}

func (s *SQLSource) Records(ctx context.Context, fn func(Record) error) error {
	if err := s.preload(ctx); err != nil {
		return err
	}
	for i, k := range s.keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, ok := s.record(ctx, i+1, k)
		if !ok {
			continue
		}
		if err := fn(rec); err != nil {
			return stopped(err)
		}
	}
	return nil
}

func (s *SQLSource) record(ctx context.Context, order int, k storage.GeneSetKey) (Record, bool) {
	rec := Record{Order: order, Name: k.StandardName}
	row, err := s.genesets.GetBasicInfo(ctx, k.ID)
	if err != nil {
		rec.Err = err
		return rec, true
	}
	if row == nil {
		s.logger.WithField("id", k.ID).Warn("gene set disappeared between passes")
		return rec, false
	}
	rec.Fields = s.fields(row)
	members, err := s.genesets.ListMembers(ctx, k.ID)
	if err != nil {
		rec.Err = fmt.Errorf("%w: %w", util.ErrMembersUnavailable, err)
		return rec, true
	}
	rec.Members = members
	return rec, true
}

// fields maps a row onto the vocabulary. Free-text columns are cleaned of
// control characters and invalid UTF-8, which YAML cannot carry as text.
func (s *SQLSource) fields(g *storage.GeneSetRow) Fields {
	f := make(Fields, 24)
	f.Set(FieldStandardName, g.StandardName)
	f.Set(FieldSystematicName, g.SystematicName.String)
	f.Set(FieldDescriptionBrief, util.SanitizeText(g.DescriptionBrief.String))
	f.Set(FieldDescriptionFull, util.SanitizeText(g.DescriptionFull.String))
	f.Set(FieldCollectionCode, g.CollectionName.String)
	f.Set(FieldSourceSpeciesCode, g.SourceSpeciesCode.String)
	f.Set(FieldContributor, util.SanitizeText(g.Contributor.String))
	f.Set(FieldContributorOrganization, util.SanitizeText(g.ContribOrganization.String))
	f.Set(FieldExactSource, util.SanitizeText(g.ExactSource.String))
	f.Set(FieldExternalDetailsURL, g.ExternalDetailsURL.String)
	f.Set(FieldLicenseCode, g.LicenseCode.String)
	f.Set(FieldTags, g.Tags.String)
	if g.PrimaryNamespaceID.Valid {
		f.Set(FieldNamespaceID, strconv.FormatInt(g.PrimaryNamespaceID.Int64, 10))
	}
	f.Set(FieldPublicationKey, storage.IDString(g.PublicationID))
	f.Set(FieldGEOID, g.GEOID.String)
	f.Set(FieldFilteredBySimilarity, strings.Join(s.filtered[g.ID], ","))
	if h, ok := s.hallmarks[g.ID]; ok {
		f.Set(FieldFounderNames, h.FounderNames)
		f.Set(FieldRefinementDatasets, h.RefinementDatasets)
		f.Set(FieldValidationDatasets, h.ValidationDatasets)
	}
	return f
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func statsFields(stats map[string]int) log.Fields {
	f := make(log.Fields, len(stats))
	for k, v := range stats {
		f[k] = v
	}
	return f
}

var _ Source = (*SQLSource)(nil)
