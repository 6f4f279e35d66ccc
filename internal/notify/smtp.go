package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// ErrStartTLSUnavailable is returned when the relay does not offer STARTTLS.
// Credentials are never sent over a plaintext session.
var ErrStartTLSUnavailable = errors.New("smtp server does not support STARTTLS")

// SMTPNotifier submits mail to a relay on the submission port, upgrading the
// session with STARTTLS and authenticating with PLAIN.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string

	// TLSConfig overrides the default config, which verifies Host.
	TLSConfig *tls.Config
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}
	addr := net.JoinHostPort(n.Host, strconv.Itoa(n.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to smtp server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return ErrStartTLSUnavailable
	}
	tlsConfig := n.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: n.Host, MinVersion: tls.VersionTLS12}
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}
	if n.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", n.Username, n.Password, n.Host)); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}

	from := msg.From
	if from == "" {
		from = n.Username
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("set recipient %s: %w", msg.To, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}
	if _, err := w.Write(buildMessage(from, msg, time.Now())); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}
	return client.Quit()
}

func buildMessage(from string, msg Message, at time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}
