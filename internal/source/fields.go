package source

import "strings"

// Field names one raw value a source can supply. Both readers speak this
// vocabulary so the normalizer never needs to know where a record came from.
type Field string

const (
	FieldStandardName            Field = "standard_name"
	FieldSystematicName          Field = "systematic_name"
	FieldDescriptionBrief        Field = "description_brief"
	FieldDescriptionFull         Field = "description_full"
	FieldCollectionCode          Field = "collection_code"
	FieldSourceSpeciesCode       Field = "source_species_code"
	FieldSourceSpecies           Field = "source_species"
	FieldContributor             Field = "contributor"
	FieldContributorOrganization Field = "contributor_organization"
	FieldExactSource             Field = "exact_source"
	FieldExternalDetailsURL      Field = "external_details_url"
	FieldGenesetListingURL       Field = "geneset_listing_url"
	FieldLicenseCode             Field = "license_code"
	FieldTags                    Field = "tags"
	FieldNamespaceID             Field = "namespace_id"
	FieldNamespaceLabel          Field = "namespace_label"
	FieldPublicationKey          Field = "publication_key"
	FieldPMID                    Field = "pmid"
	FieldAuthors                 Field = "authors"
	FieldFilteredBySimilarity    Field = "filtered_by_similarity"
	FieldGEOID                   Field = "geo_id"
	FieldRefinementDatasets      Field = "refinement_datasets"
	FieldValidationDatasets      Field = "validation_datasets"
	FieldFounderNames            Field = "founder_names"
	FieldMembersMapping          Field = "members_mapping"
)

// freeText fields are copied into documents verbatim.
var freeText = map[Field]bool{
	FieldDescriptionBrief:        true,
	FieldDescriptionFull:         true,
	FieldContributor:             true,
	FieldContributorOrganization: true,
	FieldExactSource:             true,
}

// Fields holds the raw values of one record. A missing key and an empty
// value mean the same thing.
type Fields map[Field]string

// Get returns the value of k. Identifier-like values are trimmed; free text
// is returned as stored.
func (f Fields) Get(k Field) string {
	if freeText[k] {
		return f[k]
	}
	return strings.TrimSpace(f[k])
}

// Set stores v unless it is blank.
func (f Fields) Set(k Field, v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	f[k] = v
}

// List splits a comma separated field, dropping blank entries.
func (f Fields) List(k Field) []string {
	return SplitList(f[k], ",")
}

// SplitList splits s on sep, trims every part and drops the empty ones.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
