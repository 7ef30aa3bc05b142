package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TradeScope/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the monitor writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_records (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			grade         TEXT,
			overall_score REAL,
			action        TEXT,
			confidence    REAL,
			signal_json   TEXT,
			error         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_ts ON analysis_records(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_symbol ON analysis_records(symbol)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			alert_id        TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			alert_type      TEXT,
			severity        TEXT,
			message         TEXT,
			action_required INTEGER,
			expires_at      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_ts ON alert_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS cycle_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbols       INTEGER,
			failures      INTEGER,
			opportunities INTEGER,
			alerts        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycle_ts ON cycle_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *model.SymbolAnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var action string
	var confidence float64
	var signalJSON string
	if rec.TradingSignal != nil {
		action = string(rec.TradingSignal.Action)
		confidence = rec.TradingSignal.Confidence
		if data, err := json.Marshal(rec.TradingSignal); err == nil {
			signalJSON = string(data)
		}
	}

	_, err := r.db.Exec(`INSERT INTO analysis_records
		(timestamp, symbol, grade, overall_score, action, confidence, signal_json, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Symbol, rec.Grade, rec.OverallScore,
		action, confidence, signalJSON, rec.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(alert *model.MarketAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	actionRequired := 0
	if alert.ActionRequired {
		actionRequired = 1
	}
	_, err := r.db.Exec(`INSERT INTO alert_events
		(alert_id, timestamp, symbol, alert_type, severity, message, action_required, expires_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		alert.ID, alert.Timestamp.Unix(), alert.Symbol,
		string(alert.AlertType), string(alert.Severity), alert.Message,
		actionRequired, alert.ExpiresAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO cycle_events
		(timestamp, symbols, failures, opportunities, alerts)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbols, evt.Failures, evt.Opportunities, evt.Alerts,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
