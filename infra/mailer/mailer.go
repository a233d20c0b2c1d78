// Package mailer delivers sales-order exports by email. The SMTP
// implementation builds a plain multipart message with the CSV attached.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
)

// Config holds SMTP settings.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = 587
	}
	if c.From == "" {
		c.From = c.User
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.From == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}

// Mailer sends a message with one attachment.
type Mailer interface {
	Send(to, subject, body, filename string, attachment []byte) error
}

// SMTPMailer implements Mailer over net/smtp with PLAIN auth.
type SMTPMailer struct {
	cfg Config
	// send is swapped in tests to capture the wire message.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates an SMTPMailer from configuration.
func New(cfg Config) (*SMTPMailer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers the message with the attachment to a single recipient.
func (m *SMTPMailer) Send(to, subject, body, filename string, attachment []byte) error {
	msg, err := buildMessage(m.cfg.From, to, subject, body, filename, attachment)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	text, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(body)); err != nil {
		return nil, err
	}

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/csv"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, err
	}
	enc := base64.StdEncoding.EncodeToString(attachment)
	// wrap base64 at 76 chars per RFC 2045
	for len(enc) > 0 {
		n := 76
		if len(enc) < n {
			n = len(enc)
		}
		if _, err := part.Write([]byte(enc[:n] + "\r\n")); err != nil {
			return nil, err
		}
		enc = enc[n:]
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
