package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/ElCannibal-666/Uptask-Backend/config"
)

// Mailer sends the transactional account emails. Delivery is fire-and-forget:
// callers never wait on the transport, failures only reach the log.
type Mailer interface {
	SendConfirmationEmail(email, name, token string)
	SendPasswordResetEmail(email, name, token string)
}

// SMTPMailer delivers mail through an SMTP transport.
type SMTPMailer struct {
	smtp        config.SMTPConfig
	frontendURL string
}

func NewSMTPMailer(smtp config.SMTPConfig, frontendURL string) *SMTPMailer {
	return &SMTPMailer{smtp: smtp, frontendURL: frontendURL}
}

func (m *SMTPMailer) SendConfirmationEmail(email, name, token string) {
	body := fmt.Sprintf(`<p>Hola: %s, has creado tu cuenta en UpTask,
		ya casi esta todo listo, solo debes confirmar tu cuenta</p>
		<p>Visita el siguiente enlace:</p>
		<a href="%s/auth/confirm-account">Confirmar cuenta</a>
		<p>E ingresa el código: <b>%s</b></p>
		<p>Este token expira en 10 minutos</p>`,
		name, m.frontendURL, token)

	go m.send(email, "UpTask - Confirma tu cuenta", "Confirma tu cuenta", body)
}

func (m *SMTPMailer) SendPasswordResetEmail(email, name, token string) {
	body := fmt.Sprintf(`<p>Hola: %s, has solicitado restablecer la contraseña</p>
		<p>Visita el siguiente enlace:</p>
		<a href="%s/auth/new-password">Restablecer Contraseña</a>
		<p>E ingresa el código: <b>%s</b></p>
		<p>Este token expira en 10 minutos</p>`,
		name, m.frontendURL, token)

	go m.send(email, "UpTask - Restablece tu contraseña", "Restablece tu contraseña", body)
}

func (m *SMTPMailer) send(to, subject, text, html string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.smtp.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	d := gomail.NewDialer(m.smtp.Host, m.smtp.Port, m.smtp.User, m.smtp.Pass)

	if err := d.DialAndSend(msg); err != nil {
		log.Printf("Could not send email to %s: %v", to, err)
		return
	}
	log.Printf("Mensaje enviado a %s", to)
}
