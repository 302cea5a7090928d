package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"genesetdocs/internal/models"
)

// MarshalDocument renders a gene set the way it is stored: block style,
// two-space indent, keys in schema order.
func MarshalDocument(g models.GeneSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encode %s: %w", g.StandardName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", g.StandardName, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument is the inverse of MarshalDocument.
func UnmarshalDocument(b []byte) (models.GeneSet, error) {
	var g models.GeneSet
	if err := yaml.Unmarshal(b, &g); err != nil {
		return models.GeneSet{}, fmt.Errorf("decode document: %w", err)
	}
	return g, nil
}
