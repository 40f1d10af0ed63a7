package utils

import (
	"fmt"
	"log"
	"tms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendAccountCreatedEmail notifies a newly registered user. It is a no-op
// unless a SendGrid key is configured, so environments without outbound email
// keep working.
func SendAccountCreatedEmail(toEmail, name, nip string) error {
	if config.AppConfig.SendGridKey == "" {
		return nil
	}

	from := mail.NewEmail("Training Portal", config.AppConfig.EmailSender)
	to := mail.NewEmail(name, toEmail)
	subject := "Your training account is ready"

	plain := fmt.Sprintf("Hello %s, your training account (NIP %s) has been created.", name, nip)
	html := fmt.Sprintf(`
	<div style="font-family: Helvetica, Arial, sans-serif; line-height: 1.6;">
		<h2>Welcome, %s</h2>
		<p>Your training account has been created.</p>
		<p>Sign in with your NIP: <strong>%s</strong></p>
	</div>`, name, nip)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending account email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Account email to %s rejected, status %d", toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
