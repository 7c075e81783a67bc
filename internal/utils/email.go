package utils

import (
	"log"

	"github.com/wneessen/go-mail"

	"electroyard_back_end/internal/config"
)

// SendEmail envoie un e-mail HTML via SMTP.
func SendEmail(to, subject, htmlBody string) error {
	smtp := config.App.SMTP

	msg := mail.NewMsg()
	if err := msg.From(smtp.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(smtp.Host,
		mail.WithPort(smtp.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(smtp.Username),
		mail.WithPassword(smtp.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}
