package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genesetdocs/internal/models"
	"genesetdocs/internal/util"
)

func TestParseMembersExample(t *testing.T) {
	members, err := ParseMembers("1234,TP53,7157|5678,,")
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "1234", members[0].SourceID)
	require.NotNil(t, members[0].GeneSymbol)
	assert.Equal(t, "TP53", *members[0].GeneSymbol)
	require.NotNil(t, members[0].NCBIGeneID)
	assert.Equal(t, "7157", *members[0].NCBIGeneID)

	assert.Equal(t, "5678", members[1].SourceID)
	assert.Nil(t, members[1].GeneSymbol)
	assert.Nil(t, members[1].NCBIGeneID)

	assert.Equal(t, 1, models.CountMapped(members))
}

func TestParseMembersToleratesShortRecords(t *testing.T) {
	members, err := ParseMembers("A|B,SYM|C,SYM2,notanumber||")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Nil(t, members[0].GeneSymbol)
	assert.Equal(t, "SYM", *members[1].GeneSymbol)
	assert.Nil(t, members[1].NCBIGeneID)
	assert.Equal(t, "SYM2", *members[2].GeneSymbol)
	assert.Nil(t, members[2].NCBIGeneID)
}

func TestParseMembersEmpty(t *testing.T) {
	members, err := ParseMembers("  ")
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestParseMembersRejectsMalformedRecords(t *testing.T) {
	for _, in := range []string{"1,A,2,extra", ",TP53,7157"} {
		_, err := ParseMembers(in)
		assert.ErrorIs(t, err, util.ErrMalformedMembers, in)
	}
}
