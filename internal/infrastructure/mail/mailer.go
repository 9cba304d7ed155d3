// Package mail envía correos salientes vía SMTP (gomail) y compone el aviso de pedido cerrado.
package mail

import (
	"context"
	"fmt"

	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/pkg/config"
	"github.com/gestorventas/deposito-api/pkg/logger"
	"gopkg.in/gomail.v2"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*NoopMailer)(nil)
)

// sender abstrae gomail.Dialer para poder sustituirlo en tests.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa ports.Mailer sobre un servidor SMTP.
type SMTPMailer struct {
	dialer sender
	from   string
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML. gomail no acepta contexto: solo se comprueba antes de conectar.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}

// NoopMailer no envía nada: deja constancia en el log. Se usa cuando no hay SMTP configurado.
type NoopMailer struct {
	log *logger.Logger
}

// NewNoopMailer construye el mailer de desarrollo.
func NewNoopMailer(log *logger.Logger) *NoopMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &NoopMailer{log: log}
}

// Send registra el correo que se habría enviado.
func (m *NoopMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info().Str("to", to).Str("subject", subject).Msg("correo no enviado (SMTP deshabilitado)")
	return nil
}

// New elige SMTPMailer o NoopMailer según la configuración.
func New(cfg config.SMTPConfig, log *logger.Logger) ports.Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewNoopMailer(log)
}
