package auditlog

import (
	"time"

	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/screening"
)

// Entry is one append-only audit record of a pipeline run.
type Entry struct {
	ID              string             `json:"id"`
	Timestamp       time.Time          `json:"timestamp"`
	SenderName      string             `json:"sender_name"`
	SenderEmail     string             `json:"sender_email"`
	Subject         string             `json:"subject"`
	EmployerMessage string             `json:"employer_message"`
	ResponseText    string             `json:"response_text"`
	Evaluation      *evaluation.Result `json:"evaluation,omitempty"`
	RevisionCount   int                `json:"revision_count"`
	Status          string             `json:"status"`
	Screening       *screening.Result  `json:"screening,omitempty"`
}

// Store is the process-wide audit log. Entries are only ever appended or
// bulk-cleared; All returns them most recent first.
type Store interface {
	Append(entry Entry) error
	All() ([]Entry, error)
	Clear() error
}
