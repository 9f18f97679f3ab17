package auth

import (
	"fmt"
	"log"
	"net/smtp"

	"arts-market/config"
)

// SendRegistrationEmail mails the registration-completion link. When SMTP is
// not configured the link is only logged, which keeps local development usable.
func SendRegistrationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/account/profile?token=%s", config.BASE_URL, token)

	if config.SMTP_HOST == "" {
		log.Printf("SMTP not configured, registration link for %s: %s", to, link)
		return nil
	}

	auth := smtp.PlainAuth("", config.SMTP_FROM, config.SMTP_PASS, config.SMTP_HOST)

	subject := "Complete Registration"
	body := fmt.Sprintf("Thank you for registering!\n\nClick the following link to complete your registration:\n\n%s", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + config.SMTP_FROM + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, config.SMTP_FROM, []string{to}, message)
	if err != nil {
		log.Println("SMTP error:", err)
	}
	return err
}
