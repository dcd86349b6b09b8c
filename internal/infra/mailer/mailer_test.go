package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksProvider(t *testing.T) {
	assert.IsType(t, &ResendSender{}, New(Config{ResendAPIKey: "re_123"}))
	assert.IsType(t, SMTPSender{}, New(Config{SMTPHost: "smtp.example.com"}))
	assert.IsType(t, LogSender{}, New(Config{}))
}

func TestResendSend(t *testing.T) {
	var got resendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	s := NewResend(Config{ResendAPIKey: "re_123", ResendURL: srv.URL, From: "Gallery <noreply@example.com>"})
	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_123", auth)
	assert.Equal(t, []string{"a@example.com"}, got.To)
	assert.Equal(t, "Gallery <noreply@example.com>", got.From)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestResendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"bad from"}`))
	}))
	defer srv.Close()

	err := NewResend(Config{ResendAPIKey: "k", ResendURL: srv.URL}).Send(context.Background(), Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad from")
}

func TestTemplatesEscape(t *testing.T) {
	msg, err := VerificationEmail("a@example.com", "<b>Kim</b>", "https://api.example.com/api/auth/verify-email?token=abc", 24)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Kim&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "token=abc")
	assert.Contains(t, msg.Text, "24 hours")

	msg, err = PasswordResetEmail("a@example.com", "Kim", "https://app.example.com/reset?token=xyz", 1)
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.HTML, "token=xyz")
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME("Gallery <noreply@example.com>", Message{To: "a@example.com", Subject: "S", Text: "plain", HTML: "<p>rich</p>"}))
	assert.True(t, strings.HasPrefix(raw, "Subject: S\r\n"))
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "<p>rich</p>")
	assert.Equal(t, "noreply@example.com", envelopeAddress("Gallery <noreply@example.com>"))
	assert.Equal(t, "x@example.com", envelopeAddress("x@example.com"))
}
