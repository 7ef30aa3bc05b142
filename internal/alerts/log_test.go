package alerts

import (
	"fmt"
	"path/filepath"
	"testing"

	"TradeScope/internal/model"
)

func tempLog(t *testing.T) *Log {
	t.Helper()
	return NewLog(filepath.Join(t.TempDir(), "alerts.json"))
}

func TestAppend_RoundTrip(t *testing.T) {
	log := tempLog(t)
	alert := New("AAPL", model.AlertHighVolatility, model.SeverityHigh, "vol spike", true)

	if err := log.Append([]model.MarketAlert{alert}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := log.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	if got[0].ID != alert.ID || got[0].Symbol != "AAPL" || got[0].AlertType != model.AlertHighVolatility {
		t.Errorf("round-tripped alert mismatch: %+v", got[0])
	}
	if !got[0].ActionRequired {
		t.Error("action_required lost in round trip")
	}
}

func TestAppend_CapsAtMaxEntriesFIFO(t *testing.T) {
	log := tempLog(t)
	for i := 0; i < 130; i++ {
		a := New("SYM", model.AlertFundamentalChange, model.SeverityMedium,
			fmt.Sprintf("alert %d", i), false)
		if err := log.Append([]model.MarketAlert{a}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	got, err := log.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != MaxEntries {
		t.Fatalf("log has %d entries, want cap %d", len(got), MaxEntries)
	}
	if got[0].Message != "alert 30" {
		t.Errorf("oldest surviving entry = %q, want %q (FIFO eviction)", got[0].Message, "alert 30")
	}
	if got[len(got)-1].Message != "alert 129" {
		t.Errorf("newest entry = %q, want %q", got[len(got)-1].Message, "alert 129")
	}
}

func TestAppend_BulkOverCap(t *testing.T) {
	log := tempLog(t)
	batch := make([]model.MarketAlert, 250)
	for i := range batch {
		batch[i] = New("SYM", model.AlertNewsCatalyst, model.SeverityLow,
			fmt.Sprintf("bulk %d", i), false)
	}
	if err := log.Append(batch); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := log.Read()
	if len(got) != MaxEntries {
		t.Fatalf("log has %d entries, want %d", len(got), MaxEntries)
	}
	if got[0].Message != "bulk 150" {
		t.Errorf("oldest = %q, want bulk 150", got[0].Message)
	}
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	got, err := tempLog(t).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty log, got %d entries", len(got))
	}
}
