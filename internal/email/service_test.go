package email

import (
	"context"
	"testing"

	"github.com/careerbridge/server/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewServiceValidatesSender(t *testing.T) {
	cfg := config.EmailConfig{Enabled: true, From: "not-an-address", ResendAPIKey: "key"}

	_, err := NewService(cfg, zerolog.Nop())

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid sender email")
}

func TestNewServiceRequiresKeyWhenEnabled(t *testing.T) {
	cfg := config.EmailConfig{Enabled: true, From: "noreply@careerbridge.example"}

	_, err := NewService(cfg, zerolog.Nop())

	require.Error(t, err)
	require.Contains(t, err.Error(), "resend api key")
}

func TestSendDisabledSkips(t *testing.T) {
	cfg := config.EmailConfig{Enabled: false, From: "noreply@careerbridge.example"}
	service, err := NewService(cfg, zerolog.Nop())
	require.NoError(t, err)

	err = service.Send(context.Background(), "user@example.com", "Hello", "<p>hi</p>")

	require.NoError(t, err)
}

func TestSendRejectsBadRecipient(t *testing.T) {
	service, err := NewService(config.EmailConfig{}, zerolog.Nop())
	require.NoError(t, err)

	err = service.Send(context.Background(), "nope", "Hello", "<p>hi</p>")
	require.Error(t, err)

	err = service.Send(context.Background(), "user@example.com\r\nBcc: evil@example.com", "Hello", "<p>hi</p>")
	require.Error(t, err)
}
