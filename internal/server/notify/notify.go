// Package notify delivers password reset tokens to users.
package notify

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"github.com/dmitrijs2005/astrochat/internal/logging"
)

// Notifier sends a freshly issued reset token to its owner.
type Notifier interface {
	SendResetToken(ctx context.Context, email, token string, validFor time.Duration) error
}

const resetSubject = "Your astrochat password reset code"

// ResetMessage renders the plain-text body of the reset mail.
func ResetMessage(token string, validFor time.Duration) string {
	return fmt.Sprintf("Use this code to reset your password:\n\n%s\n\nThe code expires in %s. "+
		"If you did not ask for a reset you can ignore this message.\n", token, validFor)
}

type mailgunAPI interface {
	NewMessage(from, subject, text string, to ...string) *mg.Message
	Send(ctx context.Context, m *mg.Message) (string, string, error)
}

// MailgunNotifier sends reset tokens through the Mailgun HTTP API.
type MailgunNotifier struct {
	client  mailgunAPI
	sender  string
	timeout time.Duration
}

func NewMailgunNotifier(domain, apiKey, sender string) *MailgunNotifier {
	return &MailgunNotifier{
		client:  mg.NewMailgun(domain, apiKey),
		sender:  sender,
		timeout: 10 * time.Second,
	}
}

func (n *MailgunNotifier) SendResetToken(ctx context.Context, email, token string, validFor time.Duration) error {
	msg := n.client.NewMessage(n.sender, resetSubject, ResetMessage(token, validFor), email)

	c, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if _, _, err := n.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

// LogNotifier records that a token was issued without delivering it. Used
// when no mail provider is configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendResetToken(ctx context.Context, email, _ string, validFor time.Duration) error {
	n.log.Warn(ctx, "reset token not delivered, no mail provider configured",
		"email", email, "valid_for", validFor.String())
	return nil
}
