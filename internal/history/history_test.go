package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/phlthy88/unified-theming/internal/model"
)

func testResult(runID, theme string, success bool, ts time.Time) *model.ApplicationResult {
	return &model.ApplicationResult{
		RunID:          runID,
		ThemeName:      theme,
		OverallSuccess: success,
		SuccessRatio:   1.0,
		HandlerResults: map[string]*model.HandlerResult{
			"gtk": {HandlerName: "gtk", Toolkit: model.ToolkitGTK, Success: success, Message: "applied"},
		},
		Timestamp: ts,
	}
}

func TestStore_RecordAndList(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), "")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if err := s.Record(testResult("run-1", "nord", true, base)); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	if err := s.Record(testResult("run-2", "solarized", false, base.Add(time.Minute))); err != nil {
		t.Fatalf("failed to record: %v", err)
	}

	runs, err := s.List(0)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "run-2" {
		t.Errorf("expected newest first, got %s", runs[0].RunID)
	}
	if runs[0].OverallSuccess {
		t.Errorf("run-2 should be recorded as failed")
	}
	if hr := runs[1].HandlerResults["gtk"]; hr == nil || hr.Message != "applied" {
		t.Errorf("handler results not round-tripped: %+v", runs[1].HandlerResults)
	}
}

func TestStore_ListLimit(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), "")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		res := testResult("run-"+string(rune('a'+i)), "nord", true, base.Add(time.Duration(i)*time.Second))
		if err := s.Record(res); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}

	runs, err := s.List(2)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStore_DuplicateRunIDRejected(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), "")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	res := testResult("run-1", "nord", true, time.Now())
	if err := s.Record(res); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	if err := s.Record(res); err == nil {
		t.Errorf("expected primary key violation on duplicate run id")
	}
}
