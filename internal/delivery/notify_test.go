package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type notifyCapture struct {
	path     string
	title    string
	priority string
	tags     string
	body     string
}

func newTestNotifier(t *testing.T, status int, captured *notifyCapture) *Notifier {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = notifyCapture{
			path:     r.URL.Path,
			title:    r.Header.Get("Title"),
			priority: r.Header.Get("Priority"),
			tags:     r.Header.Get("Tags"),
			body:     string(body),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	notifier := NewNotifier("career-topic", zap.NewNop())
	notifier.BaseURL = server.URL
	return notifier
}

func TestNewMessageNotification(t *testing.T) {
	var captured notifyCapture
	notifier := newTestNotifier(t, http.StatusOK, &captured)

	result := notifier.NewMessage(context.Background(), "Jane Recruiter", "Backend Role")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if captured.path != "/career-topic" {
		t.Fatalf("expected topic in path, got %q", captured.path)
	}

	if captured.title != "New Employer Message" || captured.priority != PriorityHigh {
		t.Fatalf("unexpected headers: %+v", captured)
	}

	if !strings.Contains(captured.body, "Jane Recruiter") || !strings.Contains(captured.body, "Backend Role") {
		t.Fatalf("unexpected body: %q", captured.body)
	}
}

func TestResponseSentNotificationCarriesScore(t *testing.T) {
	var captured notifyCapture
	notifier := newTestNotifier(t, http.StatusOK, &captured)

	result := notifier.ResponseSent(context.Background(), "Jane Recruiter", 8.4)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if captured.priority != PriorityDefault {
		t.Fatalf("expected default priority, got %q", captured.priority)
	}

	if !strings.Contains(captured.body, "Evaluation Score: 8.4/10") {
		t.Fatalf("expected score in body, got %q", captured.body)
	}
}

func TestHumanNeededNotificationIsUrgent(t *testing.T) {
	var captured notifyCapture
	notifier := newTestNotifier(t, http.StatusOK, &captured)

	result := notifier.HumanNeeded(context.Background(), "Jane Recruiter", "Salary question")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if captured.priority != PriorityUrgent {
		t.Fatalf("expected urgent priority, got %q", captured.priority)
	}

	if !strings.Contains(captured.body, "Salary question") {
		t.Fatalf("expected reason in body, got %q", captured.body)
	}
}

func TestNotificationFailureFoldedIntoResult(t *testing.T) {
	var captured notifyCapture
	notifier := newTestNotifier(t, http.StatusTooManyRequests, &captured)

	result := notifier.NewMessage(context.Background(), "Jane", "Role")

	if result.Success {
		t.Fatalf("expected failure result")
	}

	if !strings.Contains(result.Error, "status 429") {
		t.Fatalf("expected status in error, got %q", result.Error)
	}
}
