// Package normalize turns raw source records into canonical GeneSet
// documents. The result depends only on the record, the catalog and the
// relationship index, so documents can be produced in any order.
package normalize

import (
	"fmt"
	"strconv"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/models"
	"genesetdocs/internal/relations"
	"genesetdocs/internal/source"
	"genesetdocs/internal/util"
)

type Normalizer struct {
	cat *catalog.Catalog
	idx *relations.Index
}

// New returns a Normalizer. A nil catalog or index behaves as an empty one.
func New(cat *catalog.Catalog, idx *relations.Index) *Normalizer {
	if cat == nil {
		cat = catalog.Empty()
	}
	if idx == nil {
		idx = relations.NewBuilder(nil).Build()
	}
	return &Normalizer{cat: cat, idx: idx}
}

// Normalize builds the document for one record. Reader errors attached to the
// record are returned wrapped; a record without a standard name yields
// ErrMissingStandardName.
func (n *Normalizer) Normalize(rec source.Record) (models.GeneSet, error) {
	f := rec.Fields
	if f == nil {
		f = source.Fields{}
	}
	name := f.Get(source.FieldStandardName)
	if rec.Err != nil {
		label := name
		if label == "" {
			label = rec.Name
		}
		return models.GeneSet{}, fmt.Errorf("gene set %q: %w", label, rec.Err)
	}
	if name == "" {
		return models.GeneSet{}, fmt.Errorf("record %d: %w", rec.Order, util.ErrMissingStandardName)
	}

	members, err := n.members(rec)
	if err != nil {
		return models.GeneSet{}, fmt.Errorf("gene set %q: %w", name, err)
	}

	g := models.GeneSet{
		StandardName:            name,
		SystematicName:          f.Get(source.FieldSystematicName),
		BriefDescription:        f.Get(source.FieldDescriptionBrief),
		FullDescription:         models.StringPtr(f.Get(source.FieldDescriptionFull)),
		Collection:              n.collection(f.Get(source.FieldCollectionCode)),
		SourceSpecies:           n.species(f),
		ContributedBy:           f.Get(source.FieldContributor),
		ContributorOrganization: f.Get(source.FieldContributorOrganization),
		ExactSource:             f.Get(source.FieldExactSource),
		License:                 f.Get(source.FieldLicenseCode),
		Tags:                    nonNil(f.List(source.FieldTags)),
		SourcePlatform:          n.platform(f),
		ExternalLinks:           n.externalLinks(name, f),
		SourcePublication:       n.publication(f),
		RelatedGeneSets:         n.related(name, f.Get(source.FieldPublicationKey)),
		FilteredBySimilarity:    f.List(source.FieldFilteredBySimilarity),
		DatasetReferences:       datasetReferences(f),
		HallmarkInfo:            hallmarkInfo(f),
		VersionHistory:          n.cat.History(name),
		Members:                 members,
	}
	g.NumMembers = len(g.Members)
	g.NumGenesMapped = models.CountMapped(g.Members)
	return g, nil
}

func (n *Normalizer) members(rec source.Record) ([]models.Member, error) {
	if rec.Members != nil {
		return rec.Members, nil
	}
	return source.ParseMembers(rec.Fields[source.FieldMembersMapping])
}

func (n *Normalizer) collection(code string) *models.Collection {
	if code == "" {
		return nil
	}
	return &models.Collection{Name: code, FullName: n.cat.CollectionName(code)}
}

func (n *Normalizer) species(f source.Fields) string {
	if s := f.Get(source.FieldSourceSpecies); s != "" {
		return s
	}
	return n.cat.SpeciesName(f.Get(source.FieldSourceSpeciesCode))
}

// platform resolves whichever half of (id, label) the record lacks through
// the namespace table.
func (n *Normalizer) platform(f source.Fields) *models.SourcePlatform {
	label := f.Get(source.FieldNamespaceLabel)
	var id *int64
	if raw := f.Get(source.FieldNamespaceID); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			id = &v
		}
	}
	if id == nil && label != "" {
		if v, ok := n.cat.NamespaceID(label); ok {
			id = &v
		}
	}
	if id != nil && label == "" {
		label, _ = n.cat.NamespaceLabel(*id)
	}
	if id == nil && label == "" {
		return nil
	}
	return &models.SourcePlatform{ID: id, Name: label}
}

func (n *Normalizer) externalLinks(name string, f source.Fields) []string {
	links := make([]string, 0, 4)
	links = append(links, f.Get(source.FieldExternalDetailsURL))
	links = append(links, n.cat.ExternalTerms(name)...)
	links = append(links, f.Get(source.FieldGenesetListingURL))
	return dedupe(links)
}

// publication prefers the catalog entry for the publication key and falls
// back to whatever the record carries inline.
func (n *Normalizer) publication(f source.Fields) *models.Publication {
	if p, ok := n.cat.Publication(f.Get(source.FieldPublicationKey)); ok && !p.IsZero() {
		return &p
	}
	p := models.Publication{
		PMID:    f.Get(source.FieldPMID),
		Authors: f.List(source.FieldAuthors),
	}
	if p.IsZero() {
		return nil
	}
	return &p
}

func (n *Normalizer) related(name, pubKey string) *models.RelatedGeneSets {
	r := models.RelatedGeneSets{
		FromSamePublication: n.idx.RelatedByPublication(name, pubKey),
		FromSameAuthors:     n.idx.RelatedByAuthors(name, pubKey),
	}
	if len(r.FromSamePublication) == 0 && len(r.FromSameAuthors) == 0 {
		return nil
	}
	return &r
}

func hallmarkInfo(f source.Fields) *models.HallmarkInfo {
	founders := f.List(source.FieldFounderNames)
	if len(founders) == 0 {
		return nil
	}
	return &models.HallmarkInfo{FounderGeneSets: founders}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
