package mailer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

// recordingSender swaps the network step for a counter
func recordingSender(cfg Config, result error) (*Sender, *int) {
	calls := 0
	s := New(cfg)
	s.send = func(context.Context, *mail.Msg) error {
		calls++
		return result
	}
	return s, &calls
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestSendWithoutCredentialsDoesNotConnect(t *testing.T) {
	for _, cfg := range []Config{
		{Host: "smtp.example.com", Port: 587},
		{Host: "smtp.example.com", Port: 587, From: "shop@example.com"},
		{Host: "smtp.example.com", Port: 587, Password: "secret"},
	} {
		s, calls := recordingSender(cfg, nil)
		ok, msg := s.Send(context.Background(), "buyer@example.com", nil)
		assert.False(t, ok)
		assert.Equal(t, MsgNotConfigured, msg)
		assert.Zero(t, *calls)
		assert.False(t, s.Configured())
	}
}

func TestSendSuccess(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Port: 587, From: "shop@example.com", Password: "secret"}
	s, calls := recordingSender(cfg, nil)

	ok, msg := s.Send(context.Background(), "buyer@example.com", []string{writeFile(t, "a.pdf"), writeFile(t, "b.pdf")})
	assert.True(t, ok)
	assert.Equal(t, MsgSent, msg)
	assert.Equal(t, 1, *calls)
}

func TestSendTransportFailureIsGeneric(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Port: 587, From: "shop@example.com", Password: "secret"}
	s, calls := recordingSender(cfg, errors.New("535 auth rejected"))

	ok, msg := s.Send(context.Background(), "buyer@example.com", []string{writeFile(t, "a.pdf")})
	assert.False(t, ok)
	assert.Equal(t, MsgFailed, msg)
	assert.Equal(t, 1, *calls)
}

func TestSendMissingAttachmentFailsBeforeConnecting(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Port: 587, From: "shop@example.com", Password: "secret"}
	s, calls := recordingSender(cfg, nil)

	ok, msg := s.Send(context.Background(), "buyer@example.com", []string{writeFile(t, "a.pdf"), "/nonexistent/b.pdf"})
	assert.False(t, ok)
	assert.Equal(t, MsgFailed, msg)
	assert.Zero(t, *calls)
}

func TestSendRejectsBadRecipient(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Port: 587, From: "shop@example.com", Password: "secret"}
	s, calls := recordingSender(cfg, nil)

	ok, _ := s.Send(context.Background(), "not an address", nil)
	assert.False(t, ok)
	assert.Zero(t, *calls)
}
