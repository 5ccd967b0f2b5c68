package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	resendAPIURL = "https://api.resend.com/emails"

	emailTimeout = 30 * time.Second
)

const htmlShell = `
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto;
            padding: 24px; color: #1a1a2e; line-height: 1.6;">
    <div style="border-bottom: 3px solid #6c63ff; padding-bottom: 16px; margin-bottom: 24px;">
        <h2 style="margin: 0; color: #6c63ff;">Career Agent Response</h2>
        <p style="margin: 4px 0 0; color: #888; font-size: 14px;">
            Automated response from Deniz Buyuksahin's Career Assistant
        </p>
    </div>
    <div style="white-space: pre-wrap; font-size: 15px;">
%s
    </div>
    <div style="border-top: 1px solid #eee; margin-top: 32px; padding-top: 16px;
                font-size: 12px; color: #999;">
        This email was composed with the assistance of an AI Career Agent and reviewed
        for quality before sending.
    </div>
</div>
`

// EmailSender delivers replies through the Resend HTTP API.
type EmailSender struct {
	apiKey      string
	from        string
	notifyEmail string
	logger      *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func NewEmailSender(apiKey, from, notifyEmail string, logger *zap.Logger) *EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EmailSender{
		apiKey:      apiKey,
		from:        from,
		notifyEmail: notifyEmail,
		logger:      logger,
		HTTPClient: &http.Client{
			Timeout: emailTimeout,
		},
		APIURL: resendAPIURL,
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send wraps the plain-text body in the HTML shell and posts it to Resend.
// The Resend test domain can only deliver to the account owner, so sends are
// redirected to the notify address when the from address uses it.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) *Result {
	actualTo := to
	if strings.Contains(s.from, "resend.dev") && s.notifyEmail != "" {
		actualTo = s.notifyEmail
		s.logger.Info("test domain detected, redirecting email",
			zap.String("original_to", to),
			zap.String("redirected_to", actualTo),
		)
	}

	payload := resendPayload{
		From:    s.from,
		To:      []string{actualTo},
		Subject: subject,
		HTML:    fmt.Sprintf(htmlShell, body),
	}

	s.logger.Debug("sending email",
		zap.String("to", to),
		zap.String("from", s.from),
		zap.String("subject", subject),
	)

	raw, err := json.Marshal(payload)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("marshal email payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(raw))
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("build email request: %v", err)}
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.logger.Warn("email delivery failed", zap.Error(err))
		return &Result{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	s.logger.Debug("resend response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", respBody),
	)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("resend returned status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.ID == "" {
		parsed.ID = "unknown"
	}

	return &Result{
		Success: true,
		Message: "Email sent successfully",
		ID:      parsed.ID,
	}
}
