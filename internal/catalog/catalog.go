// Package catalog holds the lookup tables a normalizer consults while building
// documents: collection and species names, namespace labels, publications,
// external terms and version history. A Catalog is built once per species run
// and never modified afterwards, so it can be shared freely.
package catalog

import (
	"strings"

	"genesetdocs/internal/models"
)

// Tables is the raw material for a Catalog. Any table may be nil.
type Tables struct {
	Collections   map[string]string
	Species       map[string]string
	Namespaces    map[int64]string
	Publications  map[string]models.Publication
	ExternalTerms map[string][]string
	History       map[string][]models.Version
}

type Catalog struct {
	collections   map[string]string
	species       map[string]string
	namespaces    map[int64]string
	namespaceIDs  map[string]int64
	publications  map[string]models.Publication
	externalTerms map[string][]string
	history       map[string][]models.Version
}

// New copies t into a Catalog. Later changes to t are not observed.
func New(t Tables) *Catalog {
	c := &Catalog{
		collections:   copyMap(t.Collections),
		species:       copyMap(t.Species),
		namespaces:    copyMap(t.Namespaces),
		namespaceIDs:  make(map[string]int64, len(t.Namespaces)),
		publications:  make(map[string]models.Publication, len(t.Publications)),
		externalTerms: make(map[string][]string, len(t.ExternalTerms)),
		history:       make(map[string][]models.Version, len(t.History)),
	}
	for id, label := range t.Namespaces {
		if label == "" {
			continue
		}
		if prev, ok := c.namespaceIDs[label]; !ok || id < prev {
			c.namespaceIDs[label] = id
		}
	}
	for k, p := range t.Publications {
		p.Authors = append([]string(nil), p.Authors...)
		c.publications[k] = p
	}
	for k, v := range t.ExternalTerms {
		c.externalTerms[k] = append([]string(nil), v...)
	}
	for k, v := range t.History {
		c.history[k] = append([]models.Version(nil), v...)
	}
	return c
}

// Empty is a catalog with no tables, useful for sources that carry every
// value inline.
func Empty() *Catalog { return New(Tables{}) }

// CollectionName resolves the display name of a collection code: the
// catalog's own collection table first, then the static code tables, then
// the code itself.
func (c *Catalog) CollectionName(code string) string {
	if code == "" {
		return ""
	}
	if name := c.collections[code]; name != "" {
		return name
	}
	return StaticCollectionName(code)
}

// StaticCollectionName resolves codes of one, two or three colon separated
// levels ("H", "C5:HPO", "C2:CP:KEGG"). An unknown top-level code resolves to
// itself and an unknown sub-category to the sub-category code.
func StaticCollectionName(code string) string {
	top, sub, nested := strings.Cut(code, ":")
	if !nested {
		if name, ok := CollectionFullNames[top]; ok {
			return name
		}
		return code
	}
	if name, ok := SubCategoryFullNames[sub]; ok {
		return name
	}
	return sub
}

func (c *Catalog) SpeciesName(code string) string {
	return c.species[code]
}

func (c *Catalog) NamespaceLabel(id int64) (string, bool) {
	label, ok := c.namespaces[id]
	return label, ok
}

func (c *Catalog) NamespaceID(label string) (int64, bool) {
	id, ok := c.namespaceIDs[label]
	return id, ok
}

// Publication returns a copy of the publication stored under key.
func (c *Catalog) Publication(key string) (models.Publication, bool) {
	p, ok := c.publications[key]
	if !ok {
		return models.Publication{}, false
	}
	p.Authors = append([]string(nil), p.Authors...)
	return p, true
}

func (c *Catalog) ExternalTerms(name string) []string {
	return append([]string(nil), c.externalTerms[name]...)
}

// History returns the recorded versions of a gene set, nil when none exist.
func (c *Catalog) History(name string) []models.Version {
	v := c.history[name]
	if len(v) == 0 {
		return nil
	}
	return append([]models.Version(nil), v...)
}

// Stats summarises table sizes for logging.
func (c *Catalog) Stats() map[string]int {
	return map[string]int{
		"collections":    len(c.collections),
		"species":        len(c.species),
		"namespaces":     len(c.namespaces),
		"publications":   len(c.publications),
		"external_terms": len(c.externalTerms),
		"history":        len(c.history),
	}
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
