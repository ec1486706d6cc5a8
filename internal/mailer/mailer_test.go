package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{From: "noreply@fitech.app"}, "http://localhost:8080")
	assert.Error(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com"}, "http://localhost:8080")
	assert.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", From: "noreply@fitech.app"}, "http://localhost:8080/")
	require.NoError(t, err)
	// Trailing slash stripped so links do not double up.
	assert.Equal(t, "http://localhost:8080", m.baseURL)
}

func TestLogMailer_SendVerificationEmail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	m := NewLogMailer(logger)
	err := m.SendVerificationEmail(context.Background(), "maria@example.com", "token-abc")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "maria@example.com")
	assert.Contains(t, out, "token-abc")
}
