package models

// GeneSet is the canonical per-entity document. Field order is the emitted
// key order; omitempty marks the keys that disappear when empty.
// FullDescription and Tags are always written so consumers can rely on them.
type GeneSet struct {
	StandardName            string             `yaml:"standard_name" json:"standard_name"`
	SystematicName          string             `yaml:"systematic_name,omitempty" json:"systematic_name,omitempty"`
	BriefDescription        string             `yaml:"brief_description,omitempty" json:"brief_description,omitempty"`
	FullDescription         *string            `yaml:"full_description" json:"full_description"`
	Collection              *Collection        `yaml:"collection,omitempty" json:"collection,omitempty"`
	SourceSpecies           string             `yaml:"source_species,omitempty" json:"source_species,omitempty"`
	ContributedBy           string             `yaml:"contributed_by,omitempty" json:"contributed_by,omitempty"`
	ContributorOrganization string             `yaml:"contributor_organization,omitempty" json:"contributor_organization,omitempty"`
	ExactSource             string             `yaml:"exact_source,omitempty" json:"exact_source,omitempty"`
	License                 string             `yaml:"license,omitempty" json:"license,omitempty"`
	Tags                    []string           `yaml:"tags" json:"tags"`
	SourcePlatform          *SourcePlatform    `yaml:"source_platform,omitempty" json:"source_platform,omitempty"`
	ExternalLinks           []string           `yaml:"external_links,omitempty" json:"external_links,omitempty"`
	SourcePublication       *Publication       `yaml:"source_publication,omitempty" json:"source_publication,omitempty"`
	RelatedGeneSets         *RelatedGeneSets   `yaml:"related_gene_sets,omitempty" json:"related_gene_sets,omitempty"`
	FilteredBySimilarity    []string           `yaml:"filtered_by_similarity,omitempty" json:"filtered_by_similarity,omitempty"`
	DatasetReferences       []DatasetReference `yaml:"dataset_references,omitempty" json:"dataset_references,omitempty"`
	HallmarkInfo            *HallmarkInfo      `yaml:"hallmark_info,omitempty" json:"hallmark_info,omitempty"`
	VersionHistory          []Version          `yaml:"version_history,omitempty" json:"version_history,omitempty"`
	Members                 []Member           `yaml:"members" json:"members"`
	NumMembers              int                `yaml:"num_members" json:"num_members"`
	NumGenesMapped          int                `yaml:"num_genes_mapped" json:"num_genes_mapped"`
}

type Collection struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	FullName string `yaml:"full_name,omitempty" json:"full_name,omitempty"`
}

type SourcePlatform struct {
	ID   *int64 `yaml:"id,omitempty" json:"id,omitempty"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

type Publication struct {
	PMID    string   `yaml:"pmid,omitempty" json:"pmid,omitempty"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	DOI     string   `yaml:"doi,omitempty" json:"doi,omitempty"`
	URL     string   `yaml:"url,omitempty" json:"url,omitempty"`
	Authors []string `yaml:"authors,omitempty" json:"authors,omitempty"`
}

func (p Publication) IsZero() bool {
	return p.PMID == "" && p.Title == "" && p.DOI == "" && p.URL == "" && len(p.Authors) == 0
}

type RelatedGeneSets struct {
	FromSamePublication []string `yaml:"from_same_publication,omitempty" json:"from_same_publication,omitempty"`
	FromSameAuthors     []string `yaml:"from_same_authors,omitempty" json:"from_same_authors,omitempty"`
}

type DatasetType string

const (
	DatasetGEO                DatasetType = "GEO"
	DatasetHallmarkRefinement DatasetType = "Hallmark Refinement"
	DatasetHallmarkValidation DatasetType = "Hallmark Validation"
)

type DatasetReference struct {
	Type        DatasetType `yaml:"type" json:"type"`
	ID          string      `yaml:"id" json:"id"`
	Description *string     `yaml:"description,omitempty" json:"description,omitempty"`
}

type HallmarkInfo struct {
	FounderGeneSets []string `yaml:"founder_gene_sets" json:"founder_gene_sets"`
}

type Version struct {
	Version string `yaml:"version" json:"version"`
	Change  string `yaml:"change" json:"change"`
}

// Member is one source identifier of a gene set and, when resolved, the gene
// it maps to.
type Member struct {
	SourceID   string  `yaml:"source_id" json:"source_id"`
	GeneSymbol *string `yaml:"gene_symbol" json:"gene_symbol"`
	NCBIGeneID *string `yaml:"ncbi_gene_id" json:"ncbi_gene_id"`
}

func (m Member) Mapped() bool {
	return m.GeneSymbol != nil && m.NCBIGeneID != nil
}

// CountMapped returns how many members resolve to both a symbol and a gene id.
func CountMapped(members []Member) int {
	n := 0
	for _, m := range members {
		if m.Mapped() {
			n++
		}
	}
	return n
}

// StringPtr returns nil for the empty string so optional fields serialize as
// null instead of "".
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
