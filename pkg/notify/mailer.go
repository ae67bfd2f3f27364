// Package notify sends best-effort email notifications. Delivery failures
// are returned for logging but never block the caller's main flow.
package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// SendPaymentConfirmation tells the submitter their payment was received.
func (m *Mailer) SendPaymentConfirmation(to, fullName, surveyTitle string, amount int64) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Payment received"
	e.Text = []byte(fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %d for the survey order %q. "+
			"Your order is now being processed.\n\nThanks!\n",
		fullName, amount, surveyTitle,
	))
	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", to, err)
	}
	return nil
}

// SendPaymentFailed tells the submitter their payment did not go through.
func (m *Mailer) SendPaymentFailed(to, fullName, surveyTitle string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Payment not completed"
	e.Text = []byte(fmt.Sprintf(
		"Hi %s,\n\nYour payment for the survey order %q did not complete. "+
			"You can retry from the checkout link in your original email.\n",
		fullName, surveyTitle,
	))
	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("failed to send failure notice to %s: %w", to, err)
	}
	return nil
}
