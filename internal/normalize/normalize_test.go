package normalize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/models"
	"genesetdocs/internal/relations"
	"genesetdocs/internal/source"
	"genesetdocs/internal/util"
)

func TestNormalizeRecomputesCounters(t *testing.T) {
	n := New(nil, nil)
	g, err := n.Normalize(source.Record{Fields: source.Fields{
		source.FieldStandardName:   "X",
		source.FieldMembersMapping: "1234,TP53,7157|5678,,|42,SYM",
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumMembers)
	assert.Equal(t, len(g.Members), g.NumMembers)
	assert.Equal(t, 1, g.NumGenesMapped)
}

func TestNormalizeKeepsSchemaShapeForSparseRecords(t *testing.T) {
	n := New(nil, nil)
	g, err := n.Normalize(source.Record{Fields: source.Fields{source.FieldStandardName: "SPARSE"}})
	require.NoError(t, err)

	out, err := yaml.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"standard_name: SPARSE",
		"full_description: null",
		"tags: []",
		"members: []",
		"num_members: 0",
		"num_genes_mapped: 0",
		"",
	}, "\n"), string(out))
}

func TestNormalizeErrors(t *testing.T) {
	n := New(nil, nil)

	_, err := n.Normalize(source.Record{Order: 3, Fields: source.Fields{source.FieldSystematicName: "M1"}})
	assert.ErrorIs(t, err, util.ErrMissingStandardName)

	_, err = n.Normalize(source.Record{Name: "BAD", Err: util.ErrMembersUnavailable})
	assert.ErrorIs(t, err, util.ErrMembersUnavailable)
	assert.Contains(t, err.Error(), "BAD")

	_, err = n.Normalize(source.Record{Fields: source.Fields{
		source.FieldStandardName:   "X",
		source.FieldMembersMapping: "1,2,3,4",
	}})
	assert.ErrorIs(t, err, util.ErrMalformedMembers)
}

func TestNormalizeMergesLookupsAndRelations(t *testing.T) {
	cat := catalog.New(catalog.Tables{
		Species:       map[string]string{"HS": "Homo sapiens"},
		Namespaces:    map[int64]string{10: "HUMAN_GENE_SYMBOL"},
		Publications:  map[string]models.Publication{"7": {PMID: "999", Title: "A study", Authors: []string{"Smith J"}}},
		ExternalTerms: map[string][]string{"A": {"http://b", "http://a"}},
		History:       map[string][]models.Version{"A": {{Version: "1.0", Change: "created"}}},
	})
	b := relations.NewBuilder([]string{"EXCLUDED"})
	b.Add("A", "7", []string{"1"})
	b.Add("B", "7", []string{"1"})
	b.Add("EXCLUDED", "7", []string{"1"})
	b.Add("C", "8", []string{"1"})
	n := New(cat, b.Build())

	g, err := n.Normalize(source.Record{
		Fields: source.Fields{
			source.FieldStandardName:       "A",
			source.FieldCollectionCode:     "C2:CP:KEGG",
			source.FieldSourceSpeciesCode:  "HS",
			source.FieldNamespaceID:        "10",
			source.FieldExternalDetailsURL: "http://a",
			source.FieldGenesetListingURL:  "http://c",
			source.FieldPublicationKey:     "7",
			source.FieldGEOID:              "GSE1",
			source.FieldRefinementDatasets: "GSE2:first; GSE3 ;",
			source.FieldValidationDatasets: "GSE4:second:part",
			source.FieldFounderNames:       "F1, F2",
			source.FieldTags:               "x,,y",
		},
		Members: []models.Member{{SourceID: "1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, &models.Collection{Name: "C2:CP:KEGG", FullName: "KEGG"}, g.Collection)
	assert.Equal(t, "Homo sapiens", g.SourceSpecies)
	require.NotNil(t, g.SourcePlatform)
	assert.Equal(t, int64(10), *g.SourcePlatform.ID)
	assert.Equal(t, "HUMAN_GENE_SYMBOL", g.SourcePlatform.Name)
	assert.Equal(t, []string{"http://a", "http://b", "http://c"}, g.ExternalLinks)
	assert.Equal(t, "A study", g.SourcePublication.Title)
	assert.Equal(t, []string{"B"}, g.RelatedGeneSets.FromSamePublication)
	assert.Equal(t, []string{"C"}, g.RelatedGeneSets.FromSameAuthors)
	assert.Equal(t, []string{"x", "y"}, g.Tags)
	assert.Equal(t, []string{"F1", "F2"}, g.HallmarkInfo.FounderGeneSets)
	assert.Len(t, g.VersionHistory, 1)

	require.Len(t, g.DatasetReferences, 4)
	assert.Equal(t, models.DatasetReference{Type: models.DatasetGEO, ID: "GSE1"}, g.DatasetReferences[0])
	assert.Equal(t, models.DatasetHallmarkRefinement, g.DatasetReferences[1].Type)
	assert.Equal(t, "first", *g.DatasetReferences[1].Description)
	assert.Equal(t, "GSE3", g.DatasetReferences[2].ID)
	assert.Equal(t, "", *g.DatasetReferences[2].Description)
	assert.Equal(t, models.DatasetHallmarkValidation, g.DatasetReferences[3].Type)
	assert.Equal(t, "second:part", *g.DatasetReferences[3].Description)
}

func TestNormalizePlatformFromLabelOnly(t *testing.T) {
	n := New(catalog.New(catalog.Tables{Namespaces: catalog.PlatformNamespaces()}), nil)
	g, err := n.Normalize(source.Record{Fields: source.Fields{
		source.FieldStandardName:   "X",
		source.FieldNamespaceLabel: "MY_CUSTOM_CHIP",
	}})
	require.NoError(t, err)
	assert.Nil(t, g.SourcePlatform.ID)
	assert.Equal(t, "MY_CUSTOM_CHIP", g.SourcePlatform.Name)
}

func TestNormalizeInlinePublication(t *testing.T) {
	n := New(nil, nil)
	g, err := n.Normalize(source.Record{Fields: source.Fields{
		source.FieldStandardName:   "X",
		source.FieldPublicationKey: "555",
		source.FieldPMID:           "555",
		source.FieldAuthors:        "Doe A, Roe B",
	}})
	require.NoError(t, err)
	assert.Equal(t, &models.Publication{PMID: "555", Authors: []string{"Doe A", "Roe B"}}, g.SourcePublication)
	assert.Nil(t, g.RelatedGeneSets)
}

func TestParseDatasets(t *testing.T) {
	assert.Equal(t, []Dataset{{ID: "A", Description: "x"}, {ID: "B"}}, ParseDatasets("A: x;;B"))
	assert.Empty(t, ParseDatasets(""))
}

// buildDocuments runs a source through both passes the way the exporter does.
func buildDocuments(t *testing.T, src source.Source) map[string]models.GeneSet {
	t.Helper()
	ctx := context.Background()
	cat, err := src.Catalog(ctx)
	require.NoError(t, err)
	b := relations.NewBuilder(nil)
	require.NoError(t, src.Keys(ctx, func(k source.Key) error {
		b.Add(k.Name, k.PublicationKey, k.Authors)
		return nil
	}))
	n := New(cat, b.Build())
	out := map[string]models.GeneSet{}
	require.NoError(t, src.Records(ctx, func(rec source.Record) error {
		g, err := n.Normalize(rec)
		require.NoError(t, err)
		out[g.StandardName] = g
		return nil
	}))
	return out
}
