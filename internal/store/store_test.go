package store

import (
	"context"
	"encoding/json"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
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
		// so journal_mode is only checked with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
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

func TestDocumentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	docs := s.DocumentRepo()
	ctx := context.Background()

	if _, ok, err := docs.Get(ctx, "quiz_users"); err != nil || ok {
		t.Fatalf("expected missing document, got ok=%v err=%v", ok, err)
	}

	v1 := json.RawMessage(`[{"username":"an"}]`)
	if err := docs.Put(ctx, "quiz_users", v1); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := docs.Get(ctx, "quiz_users")
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if string(got) != string(v1) {
		t.Errorf("got %s, want %s", got, v1)
	}

	// A second Put must fully replace the value, not merge.
	v2 := json.RawMessage(`[]`)
	if err := docs.Put(ctx, "quiz_users", v2); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = docs.Get(ctx, "quiz_users")
	if string(got) != string(v2) {
		t.Errorf("after overwrite got %s, want %s", got, v2)
	}

	if err := docs.Delete(ctx, "quiz_users"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := docs.Get(ctx, "quiz_users"); ok {
		t.Error("document still present after delete")
	}

	// Deleting a missing key is a no-op.
	if err := docs.Delete(ctx, "quiz_users"); err != nil {
		t.Errorf("delete missing key: %v", err)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"question-gen", "explain", "question-gen"} {
		err := events.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      purpose,
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    int64(10 * i),
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := events.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Descending sequence order.
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", all[0].Sequence, all[1].Sequence)
	}

	gen, err := events.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(gen) != 2 {
		t.Errorf("expected 2 question-gen events, got %d", len(gen))
	}

	e, err := events.GetLLMEvent(ctx, all[0].ID)
	if err != nil || e == nil {
		t.Fatalf("get event: e=%v err=%v", e, err)
	}
	if e.Purpose != all[0].Purpose {
		t.Errorf("got purpose %q, want %q", e.Purpose, all[0].Purpose)
	}

	missing, err := events.GetLLMEvent(ctx, 999999)
	if err != nil {
		t.Fatalf("get missing event: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}
