package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, time, out_dir, seed, aeq, cid, blind,
		 baseline_sharpe, ablation_sharpe, negctrl_sharpe, delta_sharpe, overall_pass)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Time, r.OutDir, r.Seed, r.AEQ, r.CID, r.Blind,
		r.BaselineSharpe, r.AblationSharpe, r.NegCtrlSharpe, r.DeltaSharpe, r.OverallPass,
	)
	return err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT run_id, time, out_dir, seed, aeq, cid, blind,
		       baseline_sharpe, ablation_sharpe, negctrl_sharpe, delta_sharpe, overall_pass
		FROM runs
		WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`
		SELECT run_id, time, out_dir, seed, aeq, cid, blind,
		       baseline_sharpe, ablation_sharpe, negctrl_sharpe, delta_sharpe, overall_pass
		FROM runs
		ORDER BY time DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	err := s.Scan(
		&rec.RunID,
		&rec.Time,
		&rec.OutDir,
		&rec.Seed,
		&rec.AEQ,
		&rec.CID,
		&rec.Blind,
		&rec.BaselineSharpe,
		&rec.AblationSharpe,
		&rec.NegCtrlSharpe,
		&rec.DeltaSharpe,
		&rec.OverallPass,
	)
	return rec, err
}
