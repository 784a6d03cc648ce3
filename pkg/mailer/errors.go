package mailer

import "errors"

var (
	// ErrInvalidConfig is returned when the mailer configuration is incomplete
	ErrInvalidConfig = errors.New("invalid mailer configuration")

	// ErrNoRecipients is returned when a message has no recipients
	ErrNoRecipients = errors.New("no recipients")

	// ErrSendFailed is returned when the SMTP conversation fails
	ErrSendFailed = errors.New("failed to send mail")
)
