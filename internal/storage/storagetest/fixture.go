// Package storagetest builds small gene set databases for tests.
package storagetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Schema is the subset of the gene set database the exporter reads.
const Schema = `
CREATE TABLE species (species_code TEXT PRIMARY KEY, species_name TEXT);
CREATE TABLE collection (collection_name TEXT PRIMARY KEY, full_name TEXT);
CREATE TABLE namespace (id INTEGER PRIMARY KEY, label TEXT);
CREATE TABLE publication (id INTEGER PRIMARY KEY, PMID TEXT, title TEXT, DOI TEXT, URL TEXT);
CREATE TABLE author (id INTEGER PRIMARY KEY, display_name TEXT);
CREATE TABLE publication_author (publication_id INTEGER, author_id INTEGER, author_order INTEGER);
CREATE TABLE gene_set (id INTEGER PRIMARY KEY, standard_name TEXT NOT NULL, collection_name TEXT, tags TEXT, license_code TEXT);
CREATE TABLE gene_set_details (
  gene_set_id INTEGER PRIMARY KEY,
  systematic_name TEXT, description_brief TEXT, description_full TEXT,
  exact_source TEXT, external_details_URL TEXT, contributor TEXT, contrib_organization TEXT,
  source_species_code TEXT, publication_id INTEGER, GEO_id TEXT, primary_namespace_id INTEGER
);
CREATE TABLE gene_symbol (id INTEGER PRIMARY KEY, symbol TEXT, NCBI_id TEXT);
CREATE TABLE source_member (id INTEGER PRIMARY KEY, source_id TEXT, gene_symbol_id INTEGER);
CREATE TABLE gene_set_source_member (gene_set_id INTEGER, source_member_id INTEGER);
CREATE TABLE external_term (term TEXT, external_name TEXT);
CREATE TABLE external_term_filtered_by_similarity (gene_set_id INTEGER, term TEXT);
CREATE TABLE hallmark (gene_set_id INTEGER PRIMARY KEY, founder_names TEXT, validation_datasets TEXT, refinement_datasets TEXT);
CREATE TABLE gene_set_archive_policy (gene_set_id INTEGER, policy_code TEXT);
`

// Corpus is a small human corpus covering every optional join. Its XML twin
// is CorpusXML.
const Corpus = `
INSERT INTO species VALUES ('HS', 'Homo sapiens');
INSERT INTO collection VALUES ('C2:CGP', 'CGP'), ('H', 'Hallmark gene sets');
INSERT INTO namespace VALUES (10, 'HUMAN_GENE_SYMBOL'), (13, 'AFFY_HG_U133');
INSERT INTO publication VALUES (1, '12345', NULL, NULL, NULL), (2, '67890', NULL, NULL, NULL);
INSERT INTO author VALUES (1, 'Smith J'), (2, 'Lee K');
INSERT INTO publication_author VALUES (1, 1, 1), (1, 2, 2), (2, 1, 1);
INSERT INTO gene_set VALUES
  (1, 'SMITH_TUMOR_UP', 'C2:CGP', 'cancer,up', 'CC-BY-4.0'),
  (2, 'SMITH_TUMOR_DN', 'C2:CGP', NULL, 'CC-BY-4.0'),
  (3, 'SMITH_LIVER_2010', 'C2:CGP', NULL, 'CC-BY-4.0'),
  (4, 'HALLMARK_APOPTOSIS', 'H', NULL, 'CC-BY-4.0'),
  (5, 'NOISY_SET', 'C2:CGP', NULL, 'CC-BY-4.0');
INSERT INTO gene_set_details VALUES
  (1, 'M1001', 'Genes up in tumors.', NULL, 'Table 1', 'http://example.org/smith', 'Jane Doe', 'Example Institute', 'HS', 1, 'GSE100', 13),
  (2, 'M1002', 'Genes down in tumors.', 'Longer text.', NULL, NULL, 'Jane Doe', NULL, 'HS', 1, NULL, 10),
  (3, 'M1003', NULL, NULL, NULL, NULL, NULL, NULL, 'HS', 2, NULL, 10),
  (4, 'M5902', 'Apoptosis.', NULL, NULL, NULL, NULL, NULL, 'HS', NULL, NULL, 10),
  (5, 'M9999', NULL, NULL, NULL, NULL, NULL, NULL, 'HS', 1, NULL, 10);
INSERT INTO gene_symbol VALUES (1, 'TP53', '7157'), (2, 'BRCA1', '672'), (3, 'ORPHAN1', NULL);
INSERT INTO source_member VALUES (1, '1234', 1), (2, '5678', NULL), (3, '672', 2), (4, '9999', 3);
INSERT INTO gene_set_source_member VALUES (1, 1), (1, 2), (2, 3), (3, 1), (4, 1), (4, 3), (4, 4), (5, 1);
INSERT INTO external_term VALUES ('SMITH_TUMOR_UP', 'http://example.org/term');
INSERT INTO external_term_filtered_by_similarity VALUES (4, 'HALLMARK_OLD_B'), (4, 'HALLMARK_OLD_A');
INSERT INTO hallmark VALUES (4, 'FOUNDER_A,FOUNDER_B', 'GSE2:validation set', 'GSE1:refinement set;GSE3');
INSERT INTO gene_set_archive_policy VALUES (5, 'THRESHOLD_EXCLUDED');
`

// CorpusXML carries the same gene sets as Corpus in the XML dump format,
// minus the archived one.
const CorpusXML = `<?xml version="1.0" encoding="UTF-8"?>
<MSIGDB NAME="test" VERSION="1">
<GENESET STANDARD_NAME="SMITH_TUMOR_UP" SYSTEMATIC_NAME="M1001" CATEGORY_CODE="C2" SUB_CATEGORY_CODE="CGP" TAGS="cancer,up" ORGANISM="Homo sapiens" CONTRIBUTOR="Jane Doe" CONTRIBUTOR_ORG="Example Institute" EXACT_SOURCE="Table 1" CHIP="AFFY_HG_U133" EXTERNAL_DETAILS_URL="http://example.org/smith" GENESET_LISTING_URL="http://example.org/term" PMID="12345" AUTHORS="Smith J,Lee K" GEOID="GSE100" DESCRIPTION_BRIEF="Genes up in tumors." MEMBERS_MAPPING="1234,TP53,7157|5678,,"/>
<GENESET STANDARD_NAME="SMITH_TUMOR_DN" SYSTEMATIC_NAME="M1002" CATEGORY_CODE="C2" SUB_CATEGORY_CODE="CGP" ORGANISM="Homo sapiens" CONTRIBUTOR="Jane Doe" CHIP="HUMAN_GENE_SYMBOL" PMID="12345" AUTHORS="Smith J,Lee K" DESCRIPTION_BRIEF="Genes down in tumors." DESCRIPTION_FULL="Longer text." MEMBERS_MAPPING="672,BRCA1,672"/>
<GENESET STANDARD_NAME="SMITH_LIVER_2010" SYSTEMATIC_NAME="M1003" CATEGORY_CODE="C2" SUB_CATEGORY_CODE="CGP" ORGANISM="Homo sapiens" CHIP="HUMAN_GENE_SYMBOL" PMID="67890" AUTHORS="Smith J" MEMBERS_MAPPING="1234,TP53,7157"/>
<GENESET STANDARD_NAME="HALLMARK_APOPTOSIS" SYSTEMATIC_NAME="M5902" CATEGORY_CODE="H" ORGANISM="Homo sapiens" CHIP="HUMAN_GENE_SYMBOL" DESCRIPTION_BRIEF="Apoptosis." FILTERED_BY_SIMILARITY="HALLMARK_OLD_A,HALLMARK_OLD_B" FOUNDER_NAMES="FOUNDER_A,FOUNDER_B" REFINEMENT_DATASETS="GSE1:refinement set;GSE3" VALIDATION_DATASETS="GSE2:validation set" MEMBERS_MAPPING="1234,TP53,7157|672,BRCA1,672|9999,ORPHAN1,"/>
</MSIGDB>
`

// History is a version history document for the corpus.
const History = `<?xml version="1.0" encoding="UTF-8"?>
<MSIGDB_HISTORY>
<GENESET STANDARD_NAME="SMITH_TUMOR_UP">
  <VERSION NUM="6.0" CHANGE="created"/>
  <VERSION NUM="7.1" CHANGE="members updated"/>
</GENESET>
<GENESET STANDARD_NAME="HALLMARK_APOPTOSIS">
  <VERSION NUM="4.0" CHANGE="created"/>
</GENESET>
</MSIGDB_HISTORY>
`

// NewSQLite creates a database under t.TempDir with Schema applied and runs
// the given statements. It returns the database path.
func NewSQLite(t testing.TB, statements ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesets.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	for _, stmt := range statements {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}
