package mailer

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

// Mailer is the notification-sender capability the booking workflows depend
// on; swapping the transport (SMTP today) never touches the callers.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers through an SMTP relay using an app password
// (Gmail-style). Credentials come from configuration, never literals.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTP(host string, port int, user, pass, fromName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     user,
		fromName: fromName,
	}
}

// Send delivers one message, honoring ctx cancellation. gomail has no
// context support, so the dial-and-send runs on its own goroutine and the
// result races the deadline.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
