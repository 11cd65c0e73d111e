package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	internal "github.com/mohspitality/hospitality-management/internal"
)

const (
	dialTimeout    = 8 * time.Second
	sessionTimeout = 15 * time.Second
)

const passwordResetTemplate = `<html>
<body>
<p>Hello,</p>
<p>A password reset was requested for your account. The link below is valid
for a limited time:</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not request this, you can ignore this email.</p>
</body>
</html>`

const staffWelcomeTemplate = `<html>
<body>
<p>Hello {{.FullName}},</p>
<p>An account has been created for you ({{.Email}}). Sign in with the
credentials provided by your company administrator.</p>
</body>
</html>`

// Mailer sends transactional mail over SMTP with STARTTLS. Templates are
// compiled once at construction.
type Mailer struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	resetURL    string
	logger      *slog.Logger
	resetTmpl   *template.Template
	welcomeTmpl *template.Template
}

func New(cfg internal.MailConfig, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:        cfg.Host,
		port:        cfg.Port,
		username:    cfg.Username,
		password:    cfg.Password,
		from:        cfg.From,
		resetURL:    cfg.ResetURL,
		logger:      logger,
		resetTmpl:   template.Must(template.New("password_reset").Parse(passwordResetTemplate)),
		welcomeTmpl: template.Must(template.New("staff_welcome").Parse(staffWelcomeTemplate)),
	}
}

func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.resetURL, url.QueryEscape(token))

	var body bytes.Buffer
	if err := m.resetTmpl.Execute(&body, map[string]string{"Link": link}); err != nil {
		return err
	}

	return m.send(to, "Password reset", body.String())
}

func (m *Mailer) SendStaffWelcomeEmail(to, fullName string) error {
	var body bytes.Buffer
	err := m.welcomeTmpl.Execute(&body, map[string]string{
		"FullName": fullName,
		"Email":    to,
	})
	if err != nil {
		return err
	}

	return m.send(to, "Welcome", body.String())
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.host == "" {
		m.logger.Warn("mailer not configured, dropping message", "to", to, "subject", subject)
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	if err := m.sendSMTP(to, []byte(msg)); err != nil {
		return err
	}

	m.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}

func (m *Mailer) sendSMTP(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return err
	}
	// Deadline covers the whole session so a stalled server cannot pin the
	// handler goroutine.
	_ = conn.SetDeadline(time.Now().Add(sessionTimeout))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
