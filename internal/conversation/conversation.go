package conversation

import (
	"fmt"
	"strings"
	"time"
)

// Terminal statuses recorded for a conversation entry.
const (
	// StatusApproved marks a reply that passed evaluation before sending.
	StatusApproved = "approved"
	// StatusSentUnapproved marks a best-effort reply sent after the revision
	// loop was exhausted without approval.
	StatusSentUnapproved = "sent_unapproved"
	// StatusFlaggedUnknown marks a message escalated to the candidate; no
	// automated response was sent.
	StatusFlaggedUnknown = "flagged_unknown"
)

// Entry is a single employer-message / agent-response pair. An empty
// AgentResponse means no automated reply was sent.
type Entry struct {
	EmployerMessage string    `json:"employer_message"`
	AgentResponse   string    `json:"agent_response"`
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store keeps per-sender conversation threads. Entries for one sender are
// append-only and ordered oldest-first; threads are removed only in bulk.
type Store interface {
	Append(sender string, entry Entry) error
	History(sender string) ([]Entry, error)
	All() (map[string][]Entry, error)
	Clear() error
}

// ContextPrompt renders prior exchanges into a block the drafting agent can
// consume. Returns an empty string when there is no history.
func ContextPrompt(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Previous Conversation History with this employer:\n")

	for i, entry := range entries {
		fmt.Fprintf(&b, "\n### Exchange %d (%s)\n", i+1, entry.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(&b, "**Employer said:** %s\n", entry.EmployerMessage)
		if entry.AgentResponse != "" {
			fmt.Fprintf(&b, "**You responded:** %s\n", entry.AgentResponse)
		} else {
			b.WriteString("*(Flagged for human review — no automated response sent)*\n")
		}
	}

	b.WriteString("\n**IMPORTANT:** Use this conversation history to maintain continuity. " +
		"Reference previous exchanges when appropriate. Avoid repeating yourself.")

	return b.String()
}
