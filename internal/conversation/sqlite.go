package conversation

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type threadRecord struct {
	ID              uint   `gorm:"primaryKey"`
	Sender          string `gorm:"index"`
	EmployerMessage string
	AgentResponse   string
	Status          string
	Timestamp       time.Time
}

func (threadRecord) TableName() string { return "conversation_entries" }

// SQLiteStore persists conversation threads through gorm. Per-sender order is
// the insertion order of the auto-increment id.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&threadRecord{}); err != nil {
		return nil, fmt.Errorf("migrate conversation entries: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(sender string, entry Entry) error {
	record := threadRecord{
		Sender:          sender,
		EmployerMessage: entry.EmployerMessage,
		AgentResponse:   entry.AgentResponse,
		Status:          entry.Status,
		Timestamp:       entry.Timestamp,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("append conversation entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(sender string) ([]Entry, error) {
	var records []threadRecord
	if err := s.db.Where("sender = ?", sender).Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load conversation history: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.entry())
	}
	return entries, nil
}

func (s *SQLiteStore) All() (map[string][]Entry, error) {
	var records []threadRecord
	if err := s.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}

	out := make(map[string][]Entry)
	for _, record := range records {
		out[record.Sender] = append(out[record.Sender], record.entry())
	}
	return out, nil
}

func (s *SQLiteStore) Clear() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&threadRecord{}).Error; err != nil {
		return fmt.Errorf("clear conversations: %w", err)
	}
	return nil
}

func (r threadRecord) entry() Entry {
	return Entry{
		EmployerMessage: r.EmployerMessage,
		AgentResponse:   r.AgentResponse,
		Status:          r.Status,
		Timestamp:       r.Timestamp,
	}
}
