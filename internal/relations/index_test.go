package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildFixture(exclude ...string) *Index {
	b := NewBuilder(exclude)
	b.Add("SMITH_UP", "p1", []string{"Smith J", "Lee K"})
	b.Add("SMITH_DN", "p1", []string{"Smith J", "Lee K"})
	b.Add("SMITH_MID", "p1", []string{"Smith J", "Lee K"})
	b.Add("SMITH_2010", "p2", []string{"Smith J"})
	b.Add("LEE_2012", "p3", []string{" Lee K ", ""})
	b.Add("ORPHAN", "", []string{"Smith J"})
	b.Add("OTHER", "p4", []string{"Doe A"})
	return b.Build()
}

func TestRelatedByPublicationExcludesSelfAndExcludedNames(t *testing.T) {
	idx := buildFixture("SMITH_MID")

	got := idx.RelatedByPublication("SMITH_UP", "p1")
	assert.Equal(t, []string{"SMITH_DN"}, got)
	assert.NotContains(t, got, "SMITH_UP")
	assert.NotContains(t, got, "SMITH_MID")

	// an excluded entity still sees the others
	assert.Equal(t, []string{"SMITH_DN", "SMITH_UP"}, idx.RelatedByPublication("SMITH_MID", "p1"))
}

func TestRelatedByAuthorsIsSortedUnionMinusPublication(t *testing.T) {
	idx := buildFixture()

	assert.Equal(t, []string{"LEE_2012", "ORPHAN", "SMITH_2010"}, idx.RelatedByAuthors("SMITH_UP", "p1"))
	assert.Equal(t, []string{"ORPHAN", "SMITH_DN", "SMITH_MID", "SMITH_UP"}, idx.RelatedByAuthors("SMITH_2010", "p2"))
	assert.Empty(t, idx.RelatedByAuthors("OTHER", "p4"))
}

func TestRelationListsAreDisjoint(t *testing.T) {
	idx := buildFixture()
	for _, tc := range []struct{ name, pub string }{
		{"SMITH_UP", "p1"}, {"SMITH_2010", "p2"}, {"LEE_2012", "p3"}, {"OTHER", "p4"},
	} {
		byPub := idx.RelatedByPublication(tc.name, tc.pub)
		for _, other := range idx.RelatedByAuthors(tc.name, tc.pub) {
			assert.NotContains(t, byPub, other, tc.name)
			assert.NotEqual(t, tc.name, other)
		}
	}
}

func TestNoPublicationMeansNoRelations(t *testing.T) {
	idx := buildFixture()
	assert.Empty(t, idx.RelatedByPublication("ORPHAN", ""))
	assert.Empty(t, idx.RelatedByAuthors("ORPHAN", ""))
	assert.Empty(t, idx.RelatedByAuthors("UNKNOWN", "p1"))
}

func TestDuplicateAddsAreDeduplicated(t *testing.T) {
	b := NewBuilder(nil)
	b.Add("A", "p", []string{"X", "X"})
	b.Add("A", "p", []string{"X"})
	b.Add("B", "p", []string{"X"})
	b.Add("C", "q", []string{"X"})
	idx := b.Build()

	assert.Equal(t, []string{"B"}, idx.RelatedByPublication("A", "p"))
	assert.Equal(t, []string{"C"}, idx.RelatedByAuthors("A", "p"))
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, idx.Publications())
	assert.Equal(t, 1, idx.Authors())
}
