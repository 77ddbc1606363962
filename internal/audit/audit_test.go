package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zonetools/zonebridge/internal/errs"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestOnInvokeRecordsSuccessAndFailure(t *testing.T) {
	l := newTestLog(t)

	l.OnInvoke("search", nil, 12*time.Millisecond)
	l.OnInvoke("get", errs.New(errs.CodeNotFound, "gone"), 5*time.Millisecond)

	records, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	byTool := map[string]Record{}
	for _, r := range records {
		byTool[r.Tool] = r
	}
	if r := byTool["search"]; !r.OK || r.ErrorCode != "" {
		t.Errorf("search record = %+v", r)
	}
	if r := byTool["get"]; r.OK || r.ErrorCode != string(errs.CodeNotFound) {
		t.Errorf("get record = %+v", r)
	}
}

func TestRecentLimits(t *testing.T) {
	l := newTestLog(t)
	for i := 0; i < 5; i++ {
		l.OnInvoke("search", nil, time.Millisecond)
	}

	records, err := l.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}
