package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

const resendEndpoint = "https://api.resend.com/emails"

// Mailer delivers contact-form submissions to the site owner via the
// Resend API. Nothing is persisted; the form is a pure passthrough.
type Mailer struct {
	apiKey    string
	fromEmail string
	toEmail   string
	client    *http.Client
}

// NewMailer builds a Mailer. Returns an error if the API key, sender or
// recipient address is missing, so a misconfigured deploy fails at boot
// rather than on the first submission.
func NewMailer(apiKey, fromEmail, toEmail string) (*Mailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("RESEND_FROM_EMAIL is required")
	}
	if toEmail == "" {
		return nil, fmt.Errorf("CONTACT_TO_EMAIL is required")
	}
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		client:    &http.Client{},
	}, nil
}

// SendContactMessage forwards one contact-form submission. The visitor's
// address goes in Reply-To so the owner can answer directly.
func (m *Mailer) SendContactMessage(ctx context.Context, name, email, subject, message string) error {
	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      []string{m.toEmail},
		ReplyTo: email,
		Subject: fmt.Sprintf("[contact] %s", subject),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Forwarded contact message via Resend")
	}

	return nil
}
