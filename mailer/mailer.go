package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendBookingConfirmation mails the customer after a completed checkout.
// With no SMTP configuration the mail is skipped and logged, so local
// environments don't need a relay.
func SendBookingConfirmation(toEmail, bookingRef string, amount float64, currency string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	if from == "" || password == "" || smtpHost == "" {
		log.Printf("[mailer] SMTP not configured; skipping confirmation for booking %s", bookingRef)
		return nil
	}

	message := []byte(fmt.Sprintf(
		"Subject: Your booking is confirmed\r\n"+
			"MIME-version: 1.0;\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n"+
			`<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto;">
				<h2>Booking confirmed</h2>
				<p>Your payment of %.2f %s was received.</p>
				<p>Booking reference: <b>%s</b></p>
				<p>You can download your receipt from your bookings page.</p>
			</div>`, amount, currency, bookingRef))

	auth := smtp.PlainAuth("", from, password, smtpHost)
	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, message); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}
