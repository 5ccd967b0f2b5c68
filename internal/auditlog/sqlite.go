package auditlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/screening"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type logRecord struct {
	Seq             uint   `gorm:"primaryKey;autoIncrement"`
	EntryID         string `gorm:"uniqueIndex"`
	Timestamp       time.Time
	SenderName      string
	SenderEmail     string
	Subject         string
	EmployerMessage string
	ResponseText    string
	Evaluation      string // JSON, empty when the run never reached evaluation
	RevisionCount   int
	Status          string
	Screening       string // JSON
}

func (logRecord) TableName() string { return "evaluation_logs" }

// SQLiteStore persists audit entries through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&logRecord{}); err != nil {
		return nil, fmt.Errorf("migrate evaluation logs: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	record := logRecord{
		EntryID:         entry.ID,
		Timestamp:       entry.Timestamp,
		SenderName:      entry.SenderName,
		SenderEmail:     entry.SenderEmail,
		Subject:         entry.Subject,
		EmployerMessage: entry.EmployerMessage,
		ResponseText:    entry.ResponseText,
		RevisionCount:   entry.RevisionCount,
		Status:          entry.Status,
	}

	if entry.Evaluation != nil {
		raw, err := json.Marshal(entry.Evaluation)
		if err != nil {
			return fmt.Errorf("marshal evaluation: %w", err)
		}
		record.Evaluation = string(raw)
	}

	if entry.Screening != nil {
		raw, err := json.Marshal(entry.Screening)
		if err != nil {
			return fmt.Errorf("marshal screening: %w", err)
		}
		record.Screening = string(raw)
	}

	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) All() ([]Entry, error) {
	var records []logRecord
	if err := s.db.Order("seq desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load log entries: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry := Entry{
			ID:              record.EntryID,
			Timestamp:       record.Timestamp,
			SenderName:      record.SenderName,
			SenderEmail:     record.SenderEmail,
			Subject:         record.Subject,
			EmployerMessage: record.EmployerMessage,
			ResponseText:    record.ResponseText,
			RevisionCount:   record.RevisionCount,
			Status:          record.Status,
		}

		if record.Evaluation != "" {
			var eval evaluation.Result
			if err := json.Unmarshal([]byte(record.Evaluation), &eval); err != nil {
				return nil, fmt.Errorf("unmarshal evaluation: %w", err)
			}
			entry.Evaluation = &eval
		}

		if record.Screening != "" {
			var screen screening.Result
			if err := json.Unmarshal([]byte(record.Screening), &screen); err != nil {
				return nil, fmt.Errorf("unmarshal screening: %w", err)
			}
			entry.Screening = &screen
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SQLiteStore) Clear() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&logRecord{}).Error; err != nil {
		return fmt.Errorf("clear log entries: %w", err)
	}
	return nil
}
