package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"registrar/internal/platform/config"
	dErrors "registrar/pkg/domain-errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var confirmationTmpl = template.Must(template.ParseFS(templateFS, "templates/confirmation.html"))

// SMTPSender delivers confirmation emails over plain SMTP with AUTH.
type SMTPSender struct {
	cfg config.NotifyConfig
}

// NewSMTPSender builds a sender from the notify transport settings.
func NewSMTPSender(cfg config.NotifyConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, c Confirmation) error {
	body, err := s.render(c)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNotification, "render confirmation email")
	}

	msg := s.compose(c.Email, "Workshop Registration Received", body)
	addr := s.cfg.Host + ":" + s.cfg.Port

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{c.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotification, "send confirmation email")
		}
		return nil
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeNotification, "send confirmation email")
	}
}

func (s *SMTPSender) render(c Confirmation) (string, error) {
	var buf bytes.Buffer
	data := struct {
		FirstName string
		LastName  string
		FromName  string
	}{c.FirstName, c.LastName, s.cfg.FromName}
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *SMTPSender) compose(to, subject, htmlBody string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}

// LogSender records sends instead of delivering them. It stands in for SMTP
// in development environments where no mail host is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, c Confirmation) error {
	s.logger.InfoContext(ctx, "confirmation email suppressed, no mail host configured",
		"email", c.Email,
		"firstName", c.FirstName,
	)
	return nil
}
