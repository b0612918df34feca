package email

import (
	"gopkg.in/gomail.v2"

	"treinai_backend/internal/config"
)

// SMTPProvider delivers mail through the configured SMTP relay.
type SMTPProvider struct {
	cfg config.EmailConfig
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) SendWelcome(to, studentName, trainerName, tempPassword string) error {
	body, err := renderWelcome(studentName, trainerName, tempPassword)
	if err != nil {
		return err
	}
	return p.send(to, "Bem-vindo ao TreinAí!", body)
}

func (p *SMTPProvider) SendDeactivation(to, studentName string) error {
	body, err := renderDeactivation(studentName)
	if err != nil {
		return err
	}
	return p.send(to, "Sua conta foi desativada", body)
}

func (p *SMTPProvider) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.FromEmail, p.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.SMTPHost,
		p.cfg.SMTPPort,
		p.cfg.SMTPUsername,
		p.cfg.SMTPPassword,
	)

	return d.DialAndSend(m)
}
