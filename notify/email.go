package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/commentmod/commentmod"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// EmailNotifier emails new-comment notifications to a fixed recipient list,
// typically the site's moderators.
type EmailNotifier struct {
	SMTP       SMTPConfig
	Recipients []string

	// site display name used in the subject line
	SiteName string
}

var _ commentmod.Notifier = (*EmailNotifier)(nil)

func (n *EmailNotifier) Send(ctx context.Context, cmt *commentmod.Comment, target commentmod.Target) error {
	if len(n.Recipients) == 0 {
		return fmt.Errorf("no notification recipients configured")
	}
	return sendSMTP(n.SMTP, n.Recipients, n.FormatSubject(cmt, target), n.FormatBody(cmt, target))
}

// FormatSubject builds the notification subject line.
func (n *EmailNotifier) FormatSubject(cmt *commentmod.Comment, target commentmod.Target) string {
	return fmt.Sprintf("[%s] New comment posted on %s %q", n.SiteName, cmt.Target.Kind, commentmod.TargetTitle(target))
}

// FormatBody builds a plain-text notification body.
func (n *EmailNotifier) FormatBody(cmt *commentmod.Comment, target commentmod.Target) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "A new comment was posted on %s %q.\n\n", cmt.Target.Kind, commentmod.TargetTitle(target))
	fmt.Fprintf(&buf, "From: %s\n", submitterLine(cmt))
	if !cmt.IsPublic {
		fmt.Fprintf(&buf, "This comment is held for moderation.\n")
	}
	fmt.Fprintf(&buf, "\n%s\n", cmt.Body)
	if link := target.Permalink(); link != "" {
		fmt.Fprintf(&buf, "\nView: %s\n", link)
	}

	return buf.String()
}

// Sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
func sendSMTP(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.From,
		strings.Join(to, ", "),
		subject,
		body,
	)

	addr := cfg.Host + ":" + cfg.Port

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, to, msg)
	}
	return sendSTARTTLS(cfg, addr, to, msg)
}

// sendImplicitTLS connects over TLS directly (port 465/SMTPS).
func sendImplicitTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer c.Close()

	if cfg.User != "" {
		auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return c.Quit()
}

// sendSTARTTLS connects plain then upgrades to TLS (port 587).
func sendSTARTTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
