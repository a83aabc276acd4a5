// SQLite access to the merged protein annotation table. The acquisition
// pipeline (UniProt/ProtParam/BLAST scrapers, out of this repo) lands one row
// per protein in the proteins table; this package loads those rows into the
// engine's table shape and persists ranked results.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/protmerge/protsim/pkg/protein"
	"github.com/protmerge/protsim/pkg/similarity"
)

// fixedColumns precede the 20 amino-acid composition columns in the
// proteins table.
var fixedColumns = []string{
	"uniprot_id", "organism", "gene_name", "function", "sequence",
	"identity", "mw", "pi", "gravy", "ext", "keywords",
}

func proteinColumns() []string {
	return append(append([]string{}, fixedColumns...), protein.AminoAcidKeys...)
}

// InitSchema creates the protsim tables when they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	aaCols := make([]string, 0, len(protein.AminoAcidKeys))
	for _, key := range protein.AminoAcidKeys {
		aaCols = append(aaCols, fmt.Sprintf("%s TEXT", key))
	}

	createProteins := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS proteins (
			uniprot_id TEXT NOT NULL,
			organism TEXT,
			gene_name TEXT,
			function TEXT,
			sequence TEXT,
			identity TEXT,
			mw TEXT,
			pi TEXT,
			gravy TEXT,
			ext TEXT,
			keywords TEXT,
			%s
		);`, strings.Join(aaCols, ",\n\t\t\t"))

	if _, err := db.ExecContext(ctx, createProteins); err != nil {
		return fmt.Errorf("create proteins table: %w", err)
	}

	const createResults = `
		CREATE TABLE IF NOT EXISTS similarity_results (
			run_id TEXT NOT NULL,
			central_id TEXT NOT NULL,
			rank INTEGER NOT NULL,
			protein_id TEXT NOT NULL,
			overall_similarity REAL NOT NULL,
			data_quality REAL NOT NULL,
			category_scores TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`

	if _, err := db.ExecContext(ctx, createResults); err != nil {
		return fmt.Errorf("create similarity_results table: %w", err)
	}

	return nil
}

// LoadProteins reads the full annotation table in insertion order. Missing
// cells come back as the empty string, which the protein package already
// treats as missing.
func LoadProteins(ctx context.Context, db *sql.DB) (*protein.Table, error) {
	cols := proteinColumns()
	coalesced := make([]string, len(cols))
	for i, col := range cols {
		coalesced[i] = fmt.Sprintf("COALESCE(%s, '')", col)
	}

	qstring := fmt.Sprintf(`SELECT %s FROM proteins ORDER BY rowid;`, strings.Join(coalesced, ", "))

	stm, err := db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("prepare protein query: %w", err)
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query proteins: %w", err)
	}
	defer rows.Close()

	var records []*protein.Record

	for rows.Next() {
		fixed := make([]string, len(fixedColumns))
		aa := make([]string, len(protein.AminoAcidKeys))

		dest := make([]interface{}, 0, len(cols))
		for i := range fixed {
			dest = append(dest, &fixed[i])
		}
		for i := range aa {
			dest = append(dest, &aa[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan protein row: %w", err)
		}

		rec := &protein.Record{
			ID:          fixed[0],
			Organism:    protein.Value(fixed[1]),
			GeneName:    protein.Value(fixed[2]),
			Function:    protein.Value(fixed[3]),
			Sequence:    protein.Value(fixed[4]),
			Identity:    protein.Value(fixed[5]),
			MW:          protein.Value(fixed[6]),
			PI:          protein.Value(fixed[7]),
			Gravy:       protein.Value(fixed[8]),
			Ext:         protein.Value(fixed[9]),
			Keywords:    protein.Value(fixed[10]),
			Composition: make(map[string]protein.Value, len(protein.AminoAcidKeys)),
		}
		for i, key := range protein.AminoAcidKeys {
			rec.Composition[key] = protein.Value(aa[i])
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proteins: %w", err)
	}

	return protein.NewTable(records), nil
}

// InsertProteins appends records to the proteins table, preserving order.
func InsertProteins(ctx context.Context, db *sql.DB, records []*protein.Record) error {
	cols := proteinColumns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	qstring := fmt.Sprintf(`INSERT INTO proteins (%s) VALUES (%s);`,
		strings.Join(cols, ", "), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx, qstring)
	if err != nil {
		return fmt.Errorf("prepare protein insert: %w", err)
	}
	defer stm.Close()

	for _, rec := range records {
		args := []interface{}{
			rec.ID,
			string(rec.Organism), string(rec.GeneName), string(rec.Function),
			string(rec.Sequence), string(rec.Identity), string(rec.MW),
			string(rec.PI), string(rec.Gravy), string(rec.Ext), string(rec.Keywords),
		}
		for _, key := range protein.AminoAcidKeys {
			args = append(args, string(rec.Composition[key]))
		}

		if _, err := stm.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert protein %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// SaveRanking persists one completed ranking run. Category sub-scores go in
// as JSON so the export layer can reproduce them losslessly.
func SaveRanking(ctx context.Context, db *sql.DB, runID, centralID string, results []similarity.ResultRow) error {
	const qstring = `
		INSERT INTO similarity_results
			(run_id, central_id, rank, protein_id, overall_similarity, data_quality, category_scores, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ranking tx: %w", err)
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx, qstring)
	if err != nil {
		return fmt.Errorf("prepare ranking insert: %w", err)
	}
	defer stm.Close()

	now := time.Now().UTC()

	for rank, row := range results {
		scores, err := json.Marshal(row.Scores)
		if err != nil {
			return fmt.Errorf("marshal scores for %s: %w", row.ProteinID, err)
		}

		if _, err := stm.ExecContext(ctx, runID, centralID, rank+1, row.ProteinID,
			row.Overall, row.DataQuality, string(scores), now); err != nil {
			return fmt.Errorf("insert ranking row %s: %w", row.ProteinID, err)
		}
	}

	return tx.Commit()
}
