package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/sanitize"
	"genesetdocs/internal/util"
)

// DefaultLicense applies to every gene set of the XML dump, which carries no
// license attribute.
const DefaultLicense = "CC-BY-4.0"

const genesetElementName = "GENESET"

// xmlAttributes maps GENESET attributes that copy straight onto a field.
// CATEGORY_CODE, SUB_CATEGORY_CODE and PMID are handled separately.
var xmlAttributes = map[string]Field{
	"STANDARD_NAME":          FieldStandardName,
	"SYSTEMATIC_NAME":        FieldSystematicName,
	"DESCRIPTION_BRIEF":      FieldDescriptionBrief,
	"DESCRIPTION_FULL":       FieldDescriptionFull,
	"ORGANISM":               FieldSourceSpecies,
	"CONTRIBUTOR":            FieldContributor,
	"CONTRIBUTOR_ORG":        FieldContributorOrganization,
	"EXACT_SOURCE":           FieldExactSource,
	"CHIP":                   FieldNamespaceLabel,
	"EXTERNAL_DETAILS_URL":   FieldExternalDetailsURL,
	"GENESET_LISTING_URL":    FieldGenesetListingURL,
	"AUTHORS":                FieldAuthors,
	"FILTERED_BY_SIMILARITY": FieldFilteredBySimilarity,
	"GEOID":                  FieldGEOID,
	"REFINEMENT_DATASETS":    FieldRefinementDatasets,
	"VALIDATION_DATASETS":    FieldValidationDatasets,
	"FOUNDER_NAMES":          FieldFounderNames,
	"MEMBERS_MAPPING":        FieldMembersMapping,
	"TAGS":                   FieldTags,
}

type genesetElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (e *genesetElement) attrs() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// XMLSource streams gene sets from the XML dump. The dump is sanitized when
// the source is opened and the repaired copy is removed by Close.
type XMLSource struct {
	path        string
	historyPath string
	repaired    sanitize.Result
	logger      *log.Entry
}

func NewXMLSource(ctx context.Context, cfg Config) (*XMLSource, error) {
	if cfg.XMLPath == "" {
		return nil, fmt.Errorf("xml source: %w: no input path", util.ErrCorpusMissing)
	}
	logger := loggerOr(cfg.Logger, KindXML)
	res, err := sanitize.File(ctx, cfg.XMLPath, cfg.TmpDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("xml source: %w: %w", util.ErrCorpusMissing, err)
	}
	if err != nil {
		return nil, fmt.Errorf("xml source: %w", err)
	}
	logger.WithFields(log.Fields{
		"path":    cfg.XMLPath,
		"parse":   res.Path,
		"repairs": res.Report.String(),
	}).Info("opened xml dump")
	return &XMLSource{
		path:        cfg.XMLPath,
		historyPath: cfg.HistoryPath,
		repaired:    res,
		logger:      logger,
	}, nil
}

func (s *XMLSource) Kind() string { return KindXML }

// SanitizeReport returns what had to be repaired in the dump.
func (s *XMLSource) SanitizeReport() sanitize.Report { return s.repaired.Report }

func (s *XMLSource) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	history, err := loadHistoryOrEmpty(ctx, s.historyPath, s.logger)
	if err != nil {
		return nil, err
	}
	return catalog.New(catalog.Tables{
		Namespaces: catalog.PlatformNamespaces(),
		History:    history,
	}), nil
}

func (s *XMLSource) Keys(ctx context.Context, fn func(Key) error) error {
	return s.walk(ctx, func(el *genesetElement) error {
		a := el.attrs()
		return fn(Key{
			Name:           a["STANDARD_NAME"],
			PublicationKey: a["PMID"],
			Authors:        SplitList(a["AUTHORS"], ","),
		})
	})
}

func (s *XMLSource) Records(ctx context.Context, fn func(Record) error) error {
	order := 0
	return s.walk(ctx, func(el *genesetElement) error {
		order++
		return fn(recordFromAttrs(order, el.attrs()))
	})
}

func (s *XMLSource) walk(ctx context.Context, fn func(*genesetElement) error) error {
	rc, err := openInput(s.repaired.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", util.ErrCorpusParse, s.repaired.Path, err)
	}
	defer rc.Close()
	return stopped(eachElement(ctx, rc, genesetElementName, fn))
}

func (s *XMLSource) Close() error {
	s.repaired.Cleanup()
	return nil
}

func recordFromAttrs(order int, a map[string]string) Record {
	f := make(Fields, len(a)+3)
	for attr, field := range xmlAttributes {
		f.Set(field, a[attr])
	}
	f.Set(FieldCollectionCode, collectionCode(a["CATEGORY_CODE"], a["SUB_CATEGORY_CODE"]))
	f.Set(FieldPMID, a["PMID"])
	f.Set(FieldPublicationKey, a["PMID"])
	f.Set(FieldLicenseCode, DefaultLicense)

	rec := Record{Order: order, Name: f.Get(FieldStandardName), Fields: f}
	members, err := ParseMembers(a["MEMBERS_MAPPING"])
	if err != nil {
		rec.Err = err
		return rec
	}
	rec.Members = members
	return rec
}

// collectionCode joins category and sub-category the way the relational
// database spells collection names ("C3" + "MIR:MIRDB" = "C3:MIR:MIRDB").
func collectionCode(category, sub string) string {
	if category == "" {
		return ""
	}
	if sub == "" {
		return category
	}
	return category + ":" + sub
}

var _ Source = (*XMLSource)(nil)
