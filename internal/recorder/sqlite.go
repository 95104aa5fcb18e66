package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/logger"
)

// SQLiteRecorder persists collector runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so readers (notebooks, Grafana) do not block the collector.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Component("recorder").WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS collect_runs (
			run_id       TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			last_updated TEXT,
			index_price  REAL,
			output_file  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON collect_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS sector_changes (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			sector         TEXT NOT NULL,
			change_percent REAL,
			ticker_count   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sector_run ON sector_changes(run_id)`,

		`CREATE TABLE IF NOT EXISTS ticker_quotes (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   TEXT NOT NULL,
			sector   TEXT NOT NULL,
			position INTEGER NOT NULL,
			ticker   TEXT,
			change   REAL,
			price    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticker_run ON ticker_quotes(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", stmtHead(s), err)
		}
	}
	return nil
}

// stmtHead shortens a statement for error messages.
func stmtHead(s string) string {
	const n = 40
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// RecordRun writes the run header, the per-sector aggregates in catalog order
// and every ticker quote in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	p := rec.Payload
	if _, err := tx.Exec(`INSERT INTO collect_runs
		(run_id, timestamp, last_updated, index_price, output_file)
		VALUES (?,?,?,?,?)`,
		rec.RunID, rec.CollectedAt.Unix(), p.LastUpdated, p.NikkeiCurrentPrice, rec.OutputFile,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, sec := range catalog.Sectors() {
		raw, ok := p.Sectors[string(sec.ID)]
		if !ok {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO sector_changes
			(run_id, sector, change_percent, ticker_count)
			VALUES (?,?,?,?)`,
			rec.RunID, string(sec.ID), raw.ChangePercent, len(raw.Tickers),
		); err != nil {
			return fmt.Errorf("insert sector %s: %w", sec.ID, err)
		}
		for i, t := range raw.Tickers {
			if _, err := tx.Exec(`INSERT INTO ticker_quotes
				(run_id, sector, position, ticker, change, price)
				VALUES (?,?,?,?,?,?)`,
				rec.RunID, string(sec.ID), i, t.Symbol, t.Change, t.Price,
			); err != nil {
				return fmt.Errorf("insert ticker %s: %w", t.Symbol, err)
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	logger.Component("recorder").Info("closing sqlite recorder")
	return r.db.Close()
}
