package mail

import "fmt"

// VerificationSubject is the subject line of account verification mail.
const VerificationSubject = "Verify your Fundoo account"

// ReminderSubject is the subject line of note expiry reminders.
const ReminderSubject = "A note of yours is about to expire"

// VerificationBody renders the HTML body of the verification mail. The link
// points at the public verify endpoint carrying the signed email token.
func VerificationBody(username, domain, token string) string {
	link := fmt.Sprintf("https://%s/api/v1/auth/verify/%s", domain, token)
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to Fundoo! Please confirm your email address by clicking the link below:</p><p><a href=%q>%s</a></p><p>If you did not sign up, you can ignore this message.</p>`,
		username, link, link,
	)
}

// ReminderBody renders the HTML body of an expiry reminder for one note.
func ReminderBody(username, noteTitle, expiresAt string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your note <strong>%s</strong> expires on %s. Open Fundoo if you want to keep it around.</p>`,
		username, noteTitle, expiresAt,
	)
}
