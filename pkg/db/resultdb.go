// Sqlite-backed result store. Each pipeline run gets a uuid and its
// final-domain and classification rows, so past runs stay queryable without
// re-parsing the TSV outputs.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yumyai/rlkscan/pkg/model"
)

type ResultDB struct {
	resultSQL *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	workflow   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS final_domains (
	run_id    TEXT NOT NULL,
	protein   TEXT NOT NULL,
	label     TEXT NOT NULL,
	start_pos INTEGER NOT NULL,
	end_pos   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS classifications (
	run_id   TEXT NOT NULL,
	protein  TEXT NOT NULL,
	class    TEXT NOT NULL,
	ecd      TEXT NOT NULL,
	kd_count INTEGER NOT NULL
);
`

// NewResultDB bootstraps the schema on the open connection.
func NewResultDB(db *sql.DB) (*ResultDB, error) {
	if _, err := db.ExecContext(context.TODO(), schema); err != nil {
		return nil, fmt.Errorf("failed to create result schema: %w", err)
	}
	return &ResultDB{resultSQL: db}, nil
}

// BeginRun registers a new pipeline run and returns its ID.
func (r *ResultDB) BeginRun(workflow string) (string, error) {
	runID := "run-" + uuid.New().String()

	_, err := r.resultSQL.ExecContext(context.TODO(),
		`INSERT INTO runs (run_id, workflow, created_at) VALUES (?, ?, ?)`,
		runID, workflow, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to register run: %w", err)
	}
	return runID, nil
}

// SaveDomains stores the post-filter, post-sort interval table for a run.
func (r *ResultDB) SaveDomains(runID string, hits model.HitTable) error {
	ctx := context.TODO()

	tx, err := r.resultSQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	stm, err := tx.PrepareContext(ctx,
		`INSERT INTO final_domains (run_id, protein, label, start_pos, end_pos) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare domain insert: %w", err)
	}
	defer stm.Close()

	for _, protein := range hits.Proteins() {
		for _, hit := range hits[protein] {
			if _, err := stm.ExecContext(ctx, runID, protein, hit.Label, hit.Start, hit.End); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to insert domain row: %w", err)
			}
		}
	}

	return tx.Commit()
}

// SaveClassifications stores the classification rows for a run.
func (r *ResultDB) SaveClassifications(runID string, rows []model.Classification) error {
	ctx := context.TODO()

	tx, err := r.resultSQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	stm, err := tx.PrepareContext(ctx,
		`INSERT INTO classifications (run_id, protein, class, ecd, kd_count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare classification insert: %w", err)
	}
	defer stm.Close()

	for _, row := range rows {
		if _, err := stm.ExecContext(ctx, runID, row.Protein, row.Class, row.ECD, row.KDCount); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert classification row: %w", err)
		}
	}

	return tx.Commit()
}

// CountClassifications reports how many rows a run produced, per class.
func (r *ResultDB) CountClassifications(runID string) (map[string]int, error) {
	ctx := context.TODO()

	stm, err := r.resultSQL.PrepareContext(ctx,
		`SELECT class, COUNT(*) FROM classifications WHERE run_id == ? GROUP BY class`)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, err
		}
		counts[class] = n
	}
	return counts, rows.Err()
}
