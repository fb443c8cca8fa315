package mailer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetMessage(t *testing.T) {
	body, err := ResetMessage("48213", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "Your password reset code is 48213. It expires in 10 minutes.\n", body)
}

func TestNew_FallsBackToLogSender(t *testing.T) {
	_, ok := New("smtp.example.com", "587", "", "").(LogSender)
	assert.True(t, ok)

	_, ok = New("smtp.example.com", "587", "shop@example.com", "pw").(*SMTPSender)
	assert.True(t, ok)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	err := LogSender{Logger: logger}.SendResetCode(context.Background(), "ann@example.com", "12345", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ann@example.com")
	assert.Contains(t, buf.String(), "12345")
}
