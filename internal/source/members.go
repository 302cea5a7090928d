package source

import (
	"fmt"
	"strings"

	"genesetdocs/internal/models"
	"genesetdocs/internal/util"
)

const (
	memberRecordSep = "|"
	memberFieldSep  = ","
)

// ParseMembers decodes a MEMBERS_MAPPING value: records separated by '|',
// each "source_id[,gene_symbol[,ncbi_gene_id]]". Empty fields become nil and
// a gene id that is not all digits is dropped. Empty records are skipped. A
// record with more than three fields or without a source id fails the whole
// value with ErrMalformedMembers.
func ParseMembers(mapping string) ([]models.Member, error) {
	out := make([]models.Member, 0, strings.Count(mapping, memberRecordSep)+1)
	if strings.TrimSpace(mapping) == "" {
		return out, nil
	}
	for i, rec := range strings.Split(mapping, memberRecordSep) {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		parts := strings.Split(rec, memberFieldSep)
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w: record %d has %d fields: %q", util.ErrMalformedMembers, i+1, len(parts), rec)
		}
		m := models.Member{SourceID: strings.TrimSpace(parts[0])}
		if m.SourceID == "" {
			return nil, fmt.Errorf("%w: record %d has no source id: %q", util.ErrMalformedMembers, i+1, rec)
		}
		if len(parts) > 1 {
			m.GeneSymbol = models.StringPtr(strings.TrimSpace(parts[1]))
		}
		if len(parts) > 2 {
			if id := strings.TrimSpace(parts[2]); isDigits(id) {
				m.NCBIGeneID = &id
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
