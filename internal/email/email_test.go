package email

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSender_PicksBackend(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name string
		opts Options
		want any
	}{
		{"log", Options{Provider: "log"}, &LogSender{}},
		{"empty defaults to log", Options{}, &LogSender{}},
		{"resend", Options{Provider: "resend", ResendAPIKey: "re_test", From: "a@b.c"}, &ResendSender{}},
		{"smtp", Options{Provider: "smtp", SMTPHost: "localhost", SMTPPort: "1025", From: "a@b.c"}, &SMTPSender{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, NewSender(tt.opts, logger))
		})
	}
}

func TestNewSender_SMTPAddressAndAuth(t *testing.T) {
	s, ok := NewSender(Options{Provider: "smtp", SMTPHost: "mail.local", SMTPPort: "2525"}, slog.Default()).(*SMTPSender)
	if !ok {
		t.Fatal("expected *SMTPSender")
	}
	assert.Equal(t, "mail.local:2525", s.addr)
	assert.Nil(t, s.auth, "auth must be nil without a username")
}
