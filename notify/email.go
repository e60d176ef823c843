package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailNotifier sends the "you have a new message" mail over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(host string, port int, username, password, from string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (e *EmailNotifier) Notify(_ context.Context, n Notification) error {
	if n.RecipientEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetAddressHeader("To", n.RecipientEmail, n.RecipientName)
	m.SetHeader("Subject", fmt.Sprintf("New message from %s on Buyonix", n.CounterpartyName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\n%s sent you a message:\n\n%q\n\nReply here: %s\n",
		n.RecipientName, n.CounterpartyName, n.Preview, n.DeepLink,
	))

	return e.dialer.DialAndSend(m)
}
