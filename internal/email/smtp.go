// Package email implementa la entrega de códigos de recuperación por SMTP.
package email

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// SMTPSender entrega códigos OTP por correo usando SMTP.
type SMTPSender struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	UseTLS             bool
	InsecureSkipVerify bool
}

// NewSMTPSender crea un SMTPSender con los parámetros dados.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host: host,
		Port: port,
		From: from,
		User: user,
		Pass: pass,
	}
}

// Send implementa otp.Notifier: envía el código a la dirección dada.
func (s *SMTPSender) Send(_ context.Context, to, code string) error {
	log := logger.L().With(
		logger.Component("SMTPSender"),
		logger.String("host", s.Host),
		logger.Int("port", s.Port),
		logger.String("to", to),
	)

	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "LifeLine password recovery code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your LifeLine verification code is %s.\n\nIt expires in 5 minutes. If you did not request it, ignore this email.\n", code))

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify, // solo dev
	}
	if s.UseTLS {
		d.SSL = true
	}

	if err := d.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return fmt.Errorf("smtp send: %w", err)
	}

	log.Info("recovery code sent")
	return nil
}
