package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestEmailSender(t *testing.T, from string, handler http.HandlerFunc) *EmailSender {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender := NewEmailSender("test-key", from, "owner@example.com", zap.NewNop())
	sender.APIURL = server.URL
	return sender
}

func TestSendSuccess(t *testing.T) {
	var captured resendPayload
	var authHeader string

	sender := newTestEmailSender(t, "agent@career.example", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "resend-123"}`))
	})

	result := sender.Send(context.Background(), "hr@corp.example", "Re: Interview", "See you Monday.")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if result.ID != "resend-123" {
		t.Fatalf("expected provider id, got %q", result.ID)
	}

	if authHeader != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", authHeader)
	}

	if len(captured.To) != 1 || captured.To[0] != "hr@corp.example" {
		t.Fatalf("unexpected recipients: %v", captured.To)
	}

	if captured.Subject != "Re: Interview" {
		t.Fatalf("unexpected subject: %q", captured.Subject)
	}

	if !strings.Contains(captured.HTML, "See you Monday.") {
		t.Fatalf("expected body inside HTML shell")
	}
}

func TestSendRedirectsTestDomain(t *testing.T) {
	var captured resendPayload

	sender := newTestEmailSender(t, "onboarding@resend.dev", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "resend-456"}`))
	})

	result := sender.Send(context.Background(), "hr@corp.example", "Re: Offer", "Thanks!")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if len(captured.To) != 1 || captured.To[0] != "owner@example.com" {
		t.Fatalf("expected redirect to notify address, got %v", captured.To)
	}
}

func TestSendReportsProviderFailure(t *testing.T) {
	sender := newTestEmailSender(t, "agent@career.example", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "invalid recipient"}`))
	})

	result := sender.Send(context.Background(), "not-an-email", "Re: x", "body")

	if result.Success {
		t.Fatalf("expected failure result")
	}

	if !strings.Contains(result.Error, "status 422") {
		t.Fatalf("expected status in error, got %q", result.Error)
	}
}

func TestSendReportsTransportFailure(t *testing.T) {
	sender := NewEmailSender("key", "agent@career.example", "", zap.NewNop())
	sender.APIURL = "http://127.0.0.1:1" // nothing listens here

	result := sender.Send(context.Background(), "hr@corp.example", "Re: x", "body")

	if result.Success || result.Error == "" {
		t.Fatalf("expected transport failure folded into result, got %+v", result)
	}
}
