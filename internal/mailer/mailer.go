// Package mailer delivers password reset codes.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender delivers a reset code to an address
type Sender interface {
	SendResetCode(ctx context.Context, to, code string, ttl time.Duration) error
}

const resetSubject = "Password Reset Code"

var resetBody = template.Must(template.New("reset").Parse(
	"Your password reset code is {{.Code}}. It expires in {{.Minutes}} minutes.\n"))

// ResetMessage renders the plain-text body of the reset email
func ResetMessage(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := resetBody.Execute(&buf, struct {
		Code    string
		Minutes int
	}{code, int(ttl.Minutes())})
	if err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}

// SMTPSender sends mail through an authenticated SMTP relay
type SMTPSender struct {
	from string
	addr string
	auth smtp.Auth
}

// NewSMTPSender creates a sender for the given SMTP server
func NewSMTPSender(host, port, user, password string) *SMTPSender {
	return &SMTPSender{
		from: user,
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", user, password, host),
	}
}

// SendResetCode emails the reset code to the account address
func (s *SMTPSender) SendResetCode(ctx context.Context, to, code string, ttl time.Duration) error {
	body, err := ResetMessage(code, ttl)
	if err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = resetSubject
	e.Text = []byte(body)

	done := make(chan error, 1)
	go func() { done <- e.Send(s.addr, s.auth) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send reset email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender writes the code to the log instead of sending it. Used when no SMTP account is configured.
type LogSender struct {
	Logger logrus.FieldLogger
}

// SendResetCode logs the code instead of sending it
func (s LogSender) SendResetCode(_ context.Context, to, code string, ttl time.Duration) error {
	s.Logger.WithFields(logrus.Fields{
		"to":      to,
		"code":    code,
		"expires": ttl.String(),
	}).Warn("SMTP not configured, reset code logged instead of emailed")
	return nil
}

// New picks the SMTP sender when credentials are present
func New(host, port, user, password string) Sender {
	if user == "" || password == "" {
		return LogSender{Logger: logrus.StandardLogger()}
	}
	return NewSMTPSender(host, port, user, password)
}
