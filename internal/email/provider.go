package email

import "treinai_backend/internal/config"

// Provider sends account lifecycle emails. Failures are logged by the
// callers and never abort the operation that triggered the email.
type Provider interface {
	// SendWelcome greets a freshly registered student with their
	// temporary credentials.
	SendWelcome(to, studentName, trainerName, tempPassword string) error

	// SendDeactivation tells a student their access has been revoked.
	SendDeactivation(to, studentName string) error
}

// New returns the gomail-backed sender, or a no-op provider when email
// is disabled in configuration.
func New(cfg config.EmailConfig) Provider {
	if !cfg.Enabled {
		return &NoopProvider{}
	}
	return NewSMTPProvider(cfg)
}

// NoopProvider swallows every send. Default in development and tests.
type NoopProvider struct{}

func (p *NoopProvider) SendWelcome(to, studentName, trainerName, tempPassword string) error {
	return nil
}

func (p *NoopProvider) SendDeactivation(to, studentName string) error {
	return nil
}
