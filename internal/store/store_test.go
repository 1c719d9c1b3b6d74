package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestFileDatabaseUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "lkpd.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.DB()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func seed(t *testing.T, repo EventRepo, events ...LLMRequestEventData) {
	t.Helper()
	for i, e := range events {
		if err := repo.AppendLLMRequest(context.Background(), e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed(t, repo, LLMRequestEventData{
		RequestID:    "req-1",
		Provider:     "gemini",
		Model:        "gemini-3-flash-preview",
		Purpose:      "worksheet",
		InputTokens:  400,
		OutputTokens: 1200,
		LatencyMs:    5300,
		Success:      true,
		RequestBody:  "[user]\nBuatkan LKPD",
		ResponseBody: "# LKPD",
	})

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event 1")
	}
	if e.RequestID != "req-1" || e.Model != "gemini-3-flash-preview" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.ResponseBody != "# LKPD" {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if time.Since(e.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", e.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed(t, repo,
		LLMRequestEventData{Provider: "gemini", Model: "a", Purpose: "worksheet", Success: true},
		LLMRequestEventData{Provider: "gemini", Model: "a", Purpose: "worksheet", Success: false, ErrorMessage: "500"},
		LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "cli", Success: true},
	)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].ID != 3 || all[2].ID != 1 {
		t.Errorf("expected newest first, got ids %d..%d", all[0].ID, all[2].ID)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != 3 {
		t.Errorf("limit query = %+v", limited)
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "worksheet"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Errorf("purpose filter returned %d events, want 2", len(byPurpose))
	}

	window, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 1, Before: 3})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(window) != 1 || window[0].ID != 2 || window[0].Success {
		t.Errorf("window query = %+v", window)
	}
}

func TestQueryLLMEventsTimeRange(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tick := base
	repo := &eventRepo{db: s.DB(), now: func() time.Time { return tick }}

	for i := 0; i < 3; i++ {
		tick = base.Add(time.Duration(i) * time.Hour)
		seed(t, repo, LLMRequestEventData{Provider: "gemini", Model: "m", Purpose: "worksheet", Success: true})
	}

	got, err := repo.QueryLLMEvents(context.Background(), QueryOpts{
		From: base.Add(30 * time.Minute),
		To:   base.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events in range, want 2", len(got))
	}
	if !got[1].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("timestamp = %v", got[1].Timestamp)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed(t, repo,
		LLMRequestEventData{Model: "gemini-3-flash-preview", Purpose: "worksheet", InputTokens: 100, OutputTokens: 900, LatencyMs: 1000, Success: true},
		LLMRequestEventData{Model: "gemini-3-flash-preview", Purpose: "worksheet", InputTokens: 120, OutputTokens: 1100, LatencyMs: 3000, Success: true},
		LLMRequestEventData{Model: "mock", Purpose: "cli", InputTokens: 10, OutputTokens: 20, LatencyMs: 5, Success: true},
	)

	purposes, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(purposes) != 2 {
		t.Fatalf("got %d purposes, want 2", len(purposes))
	}
	w := purposes[0]
	if w.Purpose != "worksheet" || w.Calls != 2 || w.InputTokens != 220 || w.OutputTokens != 2000 || w.AvgLatencyMs != 2000 {
		t.Errorf("worksheet usage = %+v", w)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 || models[0].Model != "gemini-3-flash-preview" || models[0].Calls != 2 {
		t.Errorf("model usage = %+v", models)
	}
}

func TestLLMUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	purposes, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(purposes) != 0 {
		t.Errorf("expected no usage rows, got %d", len(purposes))
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("LKPD_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("LKPD_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "lkpd", "lkpd.db") {
		t.Errorf("path = %q", p)
	}
}
