package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	out_dir TEXT NOT NULL,
	seed INTEGER NOT NULL,
	aeq TEXT NOT NULL,
	cid TEXT NOT NULL,
	blind INTEGER NOT NULL,
	baseline_sharpe REAL NOT NULL,
	ablation_sharpe REAL NOT NULL,
	negctrl_sharpe REAL NOT NULL,
	delta_sharpe REAL NOT NULL,
	overall_pass INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_aeq ON runs(aeq);
CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(time);
`
