package services

import (
	"context"
	"fmt"
	"mapify/internal/config"
	"mapify/internal/utils/helpers"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &EmailService{
		auth: auth,
		from: cfg.SMTPFrom,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Configured() bool {
	return s.host != "" && s.from != ""
}

func (s *EmailService) SendHTML(to []string, subject, body string) error {
	msg := buildMessage(s.from, to, subject, "text/html", body)
	addr := net.JoinHostPort(s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

func (s *EmailService) SendPasswordReset(_ context.Context, to, resetLink string, ttl time.Duration) error {
	html := helpers.BuildPasswordResetHTML(resetLink, int(ttl.Minutes()))
	return s.SendHTML([]string{to}, "Mapify: redefinição de senha", html)
}

func buildMessage(from string, to []string, subject, contentType, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"utf-8\"\r\n\r\n", contentType)
	b.WriteString(body)
	return []byte(b.String())
}
