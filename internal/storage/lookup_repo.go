package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"genesetdocs/internal/models"
)

// HallmarkRow carries the raw hallmark annotations of one gene set.
type HallmarkRow struct {
	FounderNames       string
	ValidationDatasets string
	RefinementDatasets string
}

// LookupRepo reads the small reference tables that are loaded once per run.
type LookupRepo struct {
	db *DB
}

func NewLookupRepo(db *DB) *LookupRepo {
	return &LookupRepo{db: db}
}

func (r *LookupRepo) Species(ctx context.Context) (map[string]string, error) {
	return r.stringPairs(ctx, "species", `SELECT species_code, species_name FROM species`)
}

func (r *LookupRepo) Collections(ctx context.Context) (map[string]string, error) {
	return r.stringPairs(ctx, "collections", `SELECT collection_name, full_name FROM collection`)
}

func (r *LookupRepo) stringPairs(ctx context.Context, what, query string) (map[string]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		if k.Valid {
			out[k.String] = v.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}

func (r *LookupRepo) Namespaces(ctx context.Context) (map[int64]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, label FROM namespace`)
	if err != nil {
		return nil, fmt.Errorf("load namespaces: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]string)
	for rows.Next() {
		var id int64
		var label sql.NullString
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		out[id] = label.String
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespaces: %w", err)
	}
	return out, nil
}

// Publications returns every publication keyed by its id, with authors in
// publication order.
func (r *LookupRepo) Publications(ctx context.Context) (map[string]models.Publication, error) {
	rows, err := r.db.Query(ctx, `SELECT id, pmid, title, doi, url FROM publication`)
	if err != nil {
		return nil, fmt.Errorf("load publications: %w", err)
	}
	out := make(map[string]models.Publication)
	for rows.Next() {
		var id int64
		var pmid, title, doi, url sql.NullString
		if err := rows.Scan(&id, &pmid, &title, &doi, &url); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		out[strconv.FormatInt(id, 10)] = models.Publication{
			PMID:  pmid.String,
			Title: title.String,
			DOI:   doi.String,
			URL:   url.String,
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate publications: %w", err)
	}
	rows.Close()

	rows, err = r.db.Query(ctx, `
SELECT pa.publication_id, a.display_name
FROM publication_author pa
JOIN author a ON pa.author_id = a.id
ORDER BY pa.publication_id, pa.author_order`)
	if err != nil {
		return nil, fmt.Errorf("load publication authors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pubID int64
		var name sql.NullString
		if err := rows.Scan(&pubID, &name); err != nil {
			return nil, fmt.Errorf("scan publication author: %w", err)
		}
		key := strconv.FormatInt(pubID, 10)
		p, ok := out[key]
		if !ok || name.String == "" {
			continue
		}
		p.Authors = append(p.Authors, name.String)
		out[key] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate publication authors: %w", err)
	}
	return out, nil
}

// AuthorIDsByPublication returns author ids per publication id, the author
// identities used for same-author relations.
func (r *LookupRepo) AuthorIDsByPublication(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.Query(ctx, `
SELECT publication_id, author_id
FROM publication_author
ORDER BY publication_id, author_order`)
	if err != nil {
		return nil, fmt.Errorf("load author ids: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var pubID, authorID int64
		if err := rows.Scan(&pubID, &authorID); err != nil {
			return nil, fmt.Errorf("scan author id: %w", err)
		}
		key := strconv.FormatInt(pubID, 10)
		out[key] = append(out[key], strconv.FormatInt(authorID, 10))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate author ids: %w", err)
	}
	return out, nil
}

// ExternalTerms returns external link targets keyed by gene set name.
func (r *LookupRepo) ExternalTerms(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.Query(ctx, `SELECT term, external_name FROM external_term`)
	if err != nil {
		return nil, fmt.Errorf("load external terms: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var term, name sql.NullString
		if err := rows.Scan(&term, &name); err != nil {
			return nil, fmt.Errorf("scan external term: %w", err)
		}
		if term.String == "" || name.String == "" {
			continue
		}
		out[term.String] = append(out[term.String], name.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate external terms: %w", err)
	}
	return out, nil
}

// FilteredBySimilarity returns, per gene set id, the names it was filtered
// against, sorted by name.
func (r *LookupRepo) FilteredBySimilarity(ctx context.Context) (map[int64][]string, error) {
	rows, err := r.db.Query(ctx, `
SELECT gene_set_id, term
FROM external_term_filtered_by_similarity
ORDER BY gene_set_id, term`)
	if err != nil {
		return nil, fmt.Errorf("load filtered by similarity: %w", err)
	}
	defer rows.Close()
	out := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var term sql.NullString
		if err := rows.Scan(&id, &term); err != nil {
			return nil, fmt.Errorf("scan filtered by similarity: %w", err)
		}
		if term.String != "" {
			out[id] = append(out[id], term.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filtered by similarity: %w", err)
	}
	return out, nil
}

func (r *LookupRepo) Hallmarks(ctx context.Context) (map[int64]HallmarkRow, error) {
	rows, err := r.db.Query(ctx, `
SELECT gene_set_id, founder_names, validation_datasets, refinement_datasets
FROM hallmark`)
	if err != nil {
		return nil, fmt.Errorf("load hallmarks: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]HallmarkRow)
	for rows.Next() {
		var id int64
		var founders, validation, refinement sql.NullString
		if err := rows.Scan(&id, &founders, &validation, &refinement); err != nil {
			return nil, fmt.Errorf("scan hallmark: %w", err)
		}
		out[id] = HallmarkRow{
			FounderNames:       founders.String,
			ValidationDatasets: validation.String,
			RefinementDatasets: refinement.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hallmarks: %w", err)
	}
	return out, nil
}
