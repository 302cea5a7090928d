package normalize

import (
	"strings"

	"genesetdocs/internal/models"
	"genesetdocs/internal/source"
)

// Dataset is one entry of an "id:description;id:description" list.
type Dataset struct {
	ID          string
	Description string
}

// ParseDatasets splits a hallmark dataset list. Entries without a colon are
// an id with an empty description; blank entries are dropped.
func ParseDatasets(s string) []Dataset {
	var out []Dataset
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, desc, _ := strings.Cut(item, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, Dataset{ID: id, Description: strings.TrimSpace(desc)})
	}
	return out
}

// datasetReferences lists the GEO accession first, then hallmark refinement
// and validation datasets in their recorded order.
func datasetReferences(f source.Fields) []models.DatasetReference {
	var refs []models.DatasetReference
	if geo := f.Get(source.FieldGEOID); geo != "" {
		refs = append(refs, models.DatasetReference{Type: models.DatasetGEO, ID: geo})
	}
	for _, d := range ParseDatasets(f.Get(source.FieldRefinementDatasets)) {
		desc := d.Description
		refs = append(refs, models.DatasetReference{Type: models.DatasetHallmarkRefinement, ID: d.ID, Description: &desc})
	}
	for _, d := range ParseDatasets(f.Get(source.FieldValidationDatasets)) {
		desc := d.Description
		refs = append(refs, models.DatasetReference{Type: models.DatasetHallmarkValidation, ID: d.ID, Description: &desc})
	}
	return refs
}
