package mailer

// Config represents the configuration for the SMTP mailer
type Config struct {
	// Host is the SMTP server hostname
	Host string

	// Port is the SMTP server port (587 for STARTTLS)
	Port string

	// Username authenticates against the SMTP server; empty disables auth
	Username string

	// Password for SMTP authentication
	Password string

	// FromAddress is the envelope sender
	FromAddress string

	// FromName is the display name on outgoing mail
	FromName string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrInvalidConfig
	}
	if c.Port == "" {
		return ErrInvalidConfig
	}
	if c.FromAddress == "" {
		return ErrInvalidConfig
	}
	return nil
}
