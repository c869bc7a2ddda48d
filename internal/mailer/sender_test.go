package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "enabled without smtp host",
			config: Config{
				Enabled:     true,
				FromAddress: "hr@example.com",
			},
			wantErr: "SMTP host is required",
		},
		{
			name: "enabled without from address",
			config: Config{
				Enabled:  true,
				SMTPHost: "smtp.example.com",
			},
			wantErr: "from address is required",
		},
		{
			name: "disabled - no validation",
			config: Config{
				Enabled: false,
			},
			wantErr: "",
		},
		{
			name: "valid config",
			config: Config{
				Enabled:     true,
				SMTPHost:    "smtp.example.com",
				FromAddress: "hr@example.com",
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSMTPSender(tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, sender)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, sender)
			}
		})
	}
}

func TestNewSMTPSender_Defaults(t *testing.T) {
	sender, err := NewSMTPSender(Config{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		FromAddress: "hr@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 587, sender.config.SMTPPort)
	assert.Nil(t, sender.auth)
}

func TestNewSMTPSender_AuthSetup(t *testing.T) {
	sender, err := NewSMTPSender(Config{
		Enabled:      true,
		SMTPHost:     "smtp.example.com",
		FromAddress:  "hr@example.com",
		SMTPUser:     "user",
		SMTPPassword: "pass",
	})
	require.NoError(t, err)
	assert.NotNil(t, sender.auth)
}

func TestSend_DisabledSkips(t *testing.T) {
	sender, err := NewSMTPSender(Config{Enabled: false})
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{
		To:      "a@x.com",
		Subject: "Activate your account",
		Body:    "hello",
	})
	assert.NoError(t, err)
}

func TestBuildMessage(t *testing.T) {
	sender, err := NewSMTPSender(Config{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		FromAddress: "HR Portal <hr@example.com>",
	})
	require.NoError(t, err)

	msg := sender.buildMessage(Message{
		To:      "a@x.com",
		Subject: "Activate your account",
		Body:    "body text",
	})

	s := string(msg)
	assert.Contains(t, s, "From: HR Portal <hr@example.com>\r\n")
	assert.Contains(t, s, "To: a@x.com\r\n")
	assert.Contains(t, s, "Subject: Activate your account\r\n")
	assert.Contains(t, s, "Content-Type: text/plain")

	// Headers and body separated by a blank line
	parts := strings.SplitN(s, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "body text", parts[1])
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "hr@example.com", extractEmail("HR Portal <hr@example.com>"))
	assert.Equal(t, "hr@example.com", extractEmail("hr@example.com"))
	assert.Equal(t, "broken <", extractEmail("broken <"))
}
