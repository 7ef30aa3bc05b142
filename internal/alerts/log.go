// Package alerts maintains the bounded, file-backed market alert log.
package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"TradeScope/internal/model"
)

// MaxEntries caps the persisted log; the oldest entries are evicted first.
const MaxEntries = 100

// DefaultTTL is how long an alert stays actionable.
const DefaultTTL = 24 * time.Hour

// Log is an append-only JSON alert log capped at MaxEntries. The mutex
// serializes writers within one process; concurrent monitor instances
// sharing a file are not supported (known limitation, no file locking).
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates a log backed by the given file path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// New builds a persisted alert with a fresh id and expiry.
func New(symbol string, alertType model.AlertType, severity model.AlertSeverity, message string, actionRequired bool) model.MarketAlert {
	now := time.Now()
	return model.MarketAlert{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Symbol:         symbol,
		AlertType:      alertType,
		Severity:       severity,
		Message:        message,
		ActionRequired: actionRequired,
		ExpiresAt:      now.Add(DefaultTTL),
	}
}

// Append reads the log, appends the new alerts, truncates to the newest
// MaxEntries and writes the file back as one operation.
func (l *Log) Append(newAlerts []model.MarketAlert) error {
	if len(newAlerts) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readLocked()
	if err != nil {
		return err
	}
	all := append(existing, newAlerts...)
	if len(all) > MaxEntries {
		all = all[len(all)-MaxEntries:]
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	return os.WriteFile(l.path, data, 0644)
}

// Read returns all persisted alerts, oldest first.
func (l *Log) Read() ([]model.MarketAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLocked()
}

func (l *Log) readLocked() ([]model.MarketAlert, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read alert log: %w", err)
	}
	var alerts []model.MarketAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		// A corrupt log is recoverable: start fresh rather than wedging
		// every future cycle.
		return nil, nil
	}
	return alerts, nil
}
