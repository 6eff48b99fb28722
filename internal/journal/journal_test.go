package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nutrivoice/nutrivoice/internal/pipeline"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalRecordAndList(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, outcome := range []string{"ok", "TIMED_OUT", "ok"} {
		run := pipeline.RunLog{
			ID:        uuid.New().String(),
			Purpose:   "analyze",
			ModelID:   "gemini-2.0-flash-lite",
			Outcome:   outcome,
			LatencyMS: int64(100 + i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := j.RecordRun(ctx, run); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	runs, err := j.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("rows = %d, want 3", len(runs))
	}
	// newest first
	if runs[0].LatencyMS != 102 || runs[2].LatencyMS != 100 {
		t.Errorf("order wrong: %+v", runs)
	}
	if runs[1].Outcome != "TIMED_OUT" {
		t.Errorf("outcome = %q", runs[1].Outcome)
	}
}

func TestJournalRecentRunsLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := pipeline.RunLog{
			ID:        uuid.New().String(),
			Purpose:   "transcribe",
			Outcome:   "ok",
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := j.RecordRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := j.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("rows = %d, want 2", len(runs))
	}
}

func TestJournalEmpty(t *testing.T) {
	j := openTestJournal(t)
	runs, err := j.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("rows = %d, want 0", len(runs))
	}
}
