package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587

	senderEmailName = "Vehicle Auction"
)

// GmailSender delivers HTML emails through Gmail SMTP.
type GmailSender struct {
	client      *mail.Client
	fromAddress string
}

func NewGmailSender(username, password string) (*GmailSender, error) {
	client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory), mail.WithUsername(username), mail.WithPassword(password))
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		client:      client,
		fromAddress: username,
	}, nil
}

func (sender *GmailSender) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(senderEmailName, sender.fromAddress); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}

	msg.Subject(subject)

	if err := msg.To(to...); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}

	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
