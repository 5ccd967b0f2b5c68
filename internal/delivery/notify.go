package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ntfyBaseURL = "https://ntfy.sh"

	notifyTimeout = 30 * time.Second
)

// Notification priorities understood by ntfy.sh.
const (
	PriorityDefault = "default"
	PriorityHigh    = "high"
	PriorityUrgent  = "urgent"
)

// Notifier pushes status notifications to the candidate's phone via ntfy.sh.
type Notifier struct {
	topic  string
	logger *zap.Logger

	HTTPClient *http.Client
	BaseURL    string
}

func NewNotifier(topic string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notifier{
		topic:  topic,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: notifyTimeout,
		},
		BaseURL: ntfyBaseURL,
	}
}

// NewMessage announces an inbound employer message.
func (n *Notifier) NewMessage(ctx context.Context, senderName, subject string) *Result {
	return n.send(ctx,
		"New Employer Message",
		fmt.Sprintf("From: %s\nSubject: %s", senderName, subject),
		PriorityHigh,
		"briefcase,incoming_envelope",
	)
}

// ResponseSent announces a delivered reply along with its evaluation score.
func (n *Notifier) ResponseSent(ctx context.Context, senderName string, score float64) *Result {
	return n.send(ctx,
		"Response Sent",
		fmt.Sprintf("Reply sent to %s\nEvaluation Score: %v/10", senderName, score),
		PriorityDefault,
		"white_check_mark,email",
	)
}

// HumanNeeded announces a flagged message that requires a manual reply.
func (n *Notifier) HumanNeeded(ctx context.Context, senderName, reason string) *Result {
	return n.send(ctx,
		"Human Intervention Needed",
		fmt.Sprintf("From: %s\nReason: %s\n\nPlease review and respond manually.", senderName, reason),
		PriorityUrgent,
		"warning,question",
	)
}

func (n *Notifier) send(ctx context.Context, title, message, priority, tags string) *Result {
	url := fmt.Sprintf("%s/%s", n.BaseURL, n.topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("build notification request: %v", err)}
	}
	req.Header.Set("Title", title)
	req.Header.Set("Priority", priority)
	req.Header.Set("Tags", tags)

	n.logger.Debug("sending notification",
		zap.String("title", title),
		zap.String("priority", priority),
	)

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		n.logger.Warn("notification delivery failed", zap.Error(err))
		return &Result{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("ntfy returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	return &Result{Success: true, Message: "Notification sent successfully"}
}
