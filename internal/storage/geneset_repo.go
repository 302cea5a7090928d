package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"genesetdocs/internal/models"
)

// PolicyThresholdExcluded marks gene sets that are never exported.
const PolicyThresholdExcluded = "THRESHOLD_EXCLUDED"

const exportableFilter = `gs.id NOT IN (
  SELECT gene_set_id FROM gene_set_archive_policy WHERE policy_code = ?
)`

// GeneSetKey is the pass-one view of a gene set.
type GeneSetKey struct {
	ID            int64
	StandardName  string
	PublicationID sql.NullInt64
}

// GeneSetRow is gene_set joined with its optional details row.
type GeneSetRow struct {
	ID                  int64
	StandardName        string
	CollectionName      sql.NullString
	Tags                sql.NullString
	LicenseCode         sql.NullString
	SystematicName      sql.NullString
	DescriptionBrief    sql.NullString
	DescriptionFull     sql.NullString
	ExactSource         sql.NullString
	ExternalDetailsURL  sql.NullString
	Contributor         sql.NullString
	ContribOrganization sql.NullString
	SourceSpeciesCode   sql.NullString
	PublicationID       sql.NullInt64
	GEOID               sql.NullString
	PrimaryNamespaceID  sql.NullInt64
}

type GeneSetRepo struct {
	db *DB
}

func NewGeneSetRepo(db *DB) *GeneSetRepo {
	return &GeneSetRepo{db: db}
}

// ListKeys returns every exportable gene set in ascending id order.
func (r *GeneSetRepo) ListKeys(ctx context.Context) ([]GeneSetKey, error) {
	rows, err := r.db.Query(ctx, `
SELECT gs.id, gs.standard_name, gsd.publication_id
FROM gene_set gs
LEFT JOIN gene_set_details gsd ON gs.id = gsd.gene_set_id
WHERE `+exportableFilter+`
ORDER BY gs.id`, PolicyThresholdExcluded)
	if err != nil {
		return nil, fmt.Errorf("list gene set keys: %w", err)
	}
	defer rows.Close()
	out := make([]GeneSetKey, 0, 1024)
	for rows.Next() {
		var k GeneSetKey
		if err := rows.Scan(&k.ID, &k.StandardName, &k.PublicationID); err != nil {
			return nil, fmt.Errorf("scan gene set key: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gene set keys: %w", err)
	}
	return out, nil
}

func (r *GeneSetRepo) CountExcluded(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM gene_set_archive_policy WHERE policy_code = ?`, PolicyThresholdExcluded).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count excluded gene sets: %w", err)
	}
	return n, nil
}

// GetBasicInfo loads one gene set. It returns (nil, nil) when the id is gone.
func (r *GeneSetRepo) GetBasicInfo(ctx context.Context, id int64) (*GeneSetRow, error) {
	row := r.db.QueryRow(ctx, `
SELECT gs.id, gs.standard_name, gs.collection_name, gs.tags, gs.license_code,
       gsd.systematic_name, gsd.description_brief, gsd.description_full,
       gsd.exact_source, gsd.external_details_url, gsd.contributor,
       gsd.contrib_organization, gsd.source_species_code,
       gsd.publication_id, gsd.geo_id, gsd.primary_namespace_id
FROM gene_set gs
LEFT JOIN gene_set_details gsd ON gs.id = gsd.gene_set_id
WHERE gs.id = ?`, id)
	var g GeneSetRow
	err := row.Scan(&g.ID, &g.StandardName, &g.CollectionName, &g.Tags, &g.LicenseCode,
		&g.SystematicName, &g.DescriptionBrief, &g.DescriptionFull,
		&g.ExactSource, &g.ExternalDetailsURL, &g.Contributor,
		&g.ContribOrganization, &g.SourceSpeciesCode,
		&g.PublicationID, &g.GEOID, &g.PrimaryNamespaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get gene set %d: %w", id, err)
	}
	return &g, nil
}

// ListMembers returns the members of a gene set ordered by source id.
func (r *GeneSetRepo) ListMembers(ctx context.Context, id int64) ([]models.Member, error) {
	rows, err := r.db.Query(ctx, `
SELECT sm.source_id, sym.symbol, sym.ncbi_id
FROM gene_set_source_member gssm
JOIN source_member sm ON gssm.source_member_id = sm.id
LEFT JOIN gene_symbol sym ON sm.gene_symbol_id = sym.id
WHERE gssm.gene_set_id = ?
ORDER BY sm.source_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list members of %d: %w", id, err)
	}
	defer rows.Close()
	out := make([]models.Member, 0, 64)
	for rows.Next() {
		var source, symbol, ncbi sql.NullString
		if err := rows.Scan(&source, &symbol, &ncbi); err != nil {
			return nil, fmt.Errorf("scan member of %d: %w", id, err)
		}
		out = append(out, models.Member{
			SourceID:   source.String,
			GeneSymbol: nullString(symbol),
			NCBIGeneID: nullString(ncbi),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members of %d: %w", id, err)
	}
	return out, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return models.StringPtr(s.String)
}

// IDString renders a nullable id as a lookup key, "" when null.
func IDString(n sql.NullInt64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}
