package auditlog

import (
	"os"
	"testing"
	"time"

	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/screening"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sampleEntry(sender string, ts time.Time) Entry {
	return Entry{
		Timestamp:       ts,
		SenderName:      "Jane Recruiter",
		SenderEmail:     sender,
		Subject:         "Backend Role",
		EmployerMessage: "Are you available?",
		ResponseText:    "Yes, I am.",
		Evaluation: &evaluation.Result{
			ToneScore: 8, ClarityScore: 8, CompletenessScore: 8, SafetyScore: 8, RelevanceScore: 8,
			OverallScore: 8.0, Feedback: "good", Approved: true,
		},
		RevisionCount: 1,
		Status:        "approved",
		Screening: &screening.Result{
			IsUnknown: false, Confidence: 0.9, Reason: "safe", Category: screening.CategorySafe,
		},
	}
}

func TestMemoryStoreMostRecentFirst(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	base := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		entry := sampleEntry("hr@corp.example", base.Add(time.Duration(i)*time.Minute))
		entry.Subject = string(rune('a' + i))
		if err := store.Append(entry); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Subject != "c" || entries[2].Subject != "a" {
		t.Fatalf("expected most recent first, got order %q %q %q",
			entries[0].Subject, entries[1].Subject, entries[2].Subject)
	}

	for _, entry := range entries {
		if entry.ID == "" {
			t.Fatalf("expected generated entry id")
		}
	}
}

func TestMemoryStoreClear(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Append(sampleEntry("hr@corp.example", time.Now())); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log after clear, got %d", len(entries))
	}
}

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "auditlog_test_*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	base := time.Date(2026, 8, 23, 8, 0, 0, 0, time.UTC)

	first := sampleEntry("hr@corp.example", base)
	second := sampleEntry("hr@corp.example", base.Add(time.Minute))
	second.Status = "flagged_unknown"
	second.Evaluation = nil
	second.ResponseText = ""

	if err := store.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Most recent first.
	if entries[0].Status != "flagged_unknown" {
		t.Fatalf("expected flagged entry first, got %+v", entries[0])
	}

	if entries[0].Evaluation != nil {
		t.Fatalf("flagged entry must carry no evaluation block")
	}

	if entries[1].Evaluation == nil || entries[1].Evaluation.OverallScore != 8.0 {
		t.Fatalf("expected evaluation to round-trip, got %+v", entries[1].Evaluation)
	}

	if entries[1].Screening == nil || entries[1].Screening.Category != "safe" {
		t.Fatalf("expected screening to round-trip, got %+v", entries[1].Screening)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, err = store.All()
	if err != nil {
		t.Fatalf("all after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log after clear, got %d", len(entries))
	}
}
