package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/vacansy/vacansy-api/internal/apperr"
)

// Mailer is the outbound notification gateway. Sends are fire-once: a
// failure is reported to the caller, there is no retry queue.
type Mailer interface {
	SendApplication(to, jobTitle, applicantEmail, cvPath string) error
	SendPasswordReset(to, token string) error
}

// SMTPMailer delivers over plain SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) SendApplication(to, jobTitle, applicantEmail, cvPath string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("New Application for %s", jobTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"A user (%s) has applied for your job: %s. See attached CV.",
		applicantEmail, jobTitle,
	))
	msg.Attach(cvPath, gomail.Rename("cv.pdf"))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: send application mail: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your reset code is %s. It expires in 1 hour.", token,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: send reset mail: %v", apperr.ErrInternal, err)
	}
	return nil
}
