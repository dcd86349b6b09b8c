// Package mailer delivers transactional email through Resend, plain SMTP, or
// the log when neither is configured.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	From string

	ResendAPIKey string
	ResendURL    string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
}

const defaultResendURL = "https://api.resend.com"

var Default Sender = LogSender{}

// New picks Resend when an API key is set, then SMTP, then the log.
func New(cfg Config) Sender {
	switch {
	case cfg.ResendAPIKey != "":
		return NewResend(cfg)
	case cfg.SMTPHost != "":
		return SMTPSender{cfg: cfg}
	default:
		return LogSender{}
	}
}

// ------------------------------
// Resend
// ------------------------------

type ResendSender struct {
	client *resty.Client
	from   string
}

func NewResend(cfg Config) *ResendSender {
	base := cfg.ResendURL
	if base == "" {
		base = defaultResendURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(base, "/")).
		SetTimeout(10*time.Second).
		SetAuthToken(cfg.ResendAPIKey).
		SetHeader("Content-Type", "application/json")
	return &ResendSender{client: client, from: cfg.From}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	var ok resendResponse
	var failed resendError
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(resendRequest{From: s.from, To: []string{msg.To}, Subject: msg.Subject, HTML: msg.HTML, Text: msg.Text}).
		SetResult(&ok).
		SetError(&failed).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend: %s: %s", resp.Status(), failed.Message)
	}
	slog.InfoContext(ctx, "email sent", "provider", "resend", "id", ok.ID, "subject", msg.Subject)
	return nil
}

// ------------------------------
// SMTP
// ------------------------------

type SMTPSender struct {
	cfg Config
}

func (s SMTPSender) Send(ctx context.Context, msg Message) error {
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	err := smtp.SendMail(s.cfg.SMTPHost+":"+s.cfg.SMTPPort, auth, envelopeAddress(s.cfg.From), []string{msg.To}, buildMIME(s.cfg.From, msg))
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	slog.InfoContext(ctx, "email sent", "provider", "smtp", "subject", msg.Subject)
	return nil
}

// envelopeAddress pulls the bare address out of "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

func buildMIME(from string, msg Message) []byte {
	const boundary = "gallery-api-alt"
	var b strings.Builder
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Text + "\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.HTML + "\r\n")
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// ------------------------------
// Log only
// ------------------------------

type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.WarnContext(ctx, "no mail provider configured, email not sent", "to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}
