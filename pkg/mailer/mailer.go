package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Message is one outgoing notification.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers notification mail. Callers treat delivery as
// fire-and-forget: a send failure must never abort the state
// transition that triggered it.
type Mailer interface {
	Send(msg Message) error
}

// Client is an SMTP-backed Mailer.
type Client struct {
	config Config
}

// NewClient creates a new SMTP mailer with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{config: config}, nil
}

// Send delivers a single message to all recipients in one SMTP
// conversation.
func (c *Client) Send(msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	from := c.config.FromAddress
	headers := []string{
		fmt.Sprintf("From: %s <%s>", c.config.FromName, from),
		fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	payload := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body)

	addr := fmt.Sprintf("%s:%s", c.config.Host, c.config.Port)

	var auth smtp.Auth
	if c.config.Username != "" {
		auth = smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	}

	if err := smtp.SendMail(addr, auth, from, msg.To, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}
