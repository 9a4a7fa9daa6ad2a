package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/utils"
)

// Transport delivers a composed message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg Message) error

func (f TransportFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// ErrNoRecipient is returned when a message has no usable To address.
var ErrNoRecipient = errors.New("mailer: message has no recipient")

// SMTPConfig configures SMTPTransport.
type SMTPConfig struct {
	Addr     string
	Username string
	Password string
	// StartTLS upgrades the connection when the server offers it.
	StartTLS bool
	// LocalName is sent in EHLO. Defaults to "localhost".
	LocalName string
	Timeout   time.Duration
	TLSConfig *tls.Config
}

// SMTPTransport relays messages through an SMTP server.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates a transport for cfg.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.LocalName == "" {
		cfg.LocalName = "localhost"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPTransport{cfg: cfg}
}

// Send performs one complete SMTP transaction. It is not retried.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	from, err := envelopeAddress(msg.From)
	if err != nil {
		return fmt.Errorf("mailer: invalid sender: %w", err)
	}
	to, err := envelopeAddress(msg.To)
	if err != nil || to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := t.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.cfg.Addr)
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", t.cfg.Addr, err)
	}

	// Bounds the greeting; the client resets deadlines per command.
	_ = conn.SetDeadline(time.Now().Add(timeout))
	c, err := smtp.NewClient(conn, hostOnly(t.cfg.Addr))
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mailer: greeting from %s: %w", t.cfg.Addr, err)
	}
	defer c.Close()

	c.CommandTimeout = timeout
	c.SubmissionTimeout = timeout

	if err := c.Hello(t.cfg.LocalName); err != nil {
		return fmt.Errorf("mailer: hello: %w", err)
	}

	if t.cfg.StartTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			tlsConfig := t.cfg.TLSConfig
			if tlsConfig == nil {
				tlsConfig = &tls.Config{ServerName: hostOnly(t.cfg.Addr)}
			}
			if err := c.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("mailer: starttls: %w", err)
			}
		}
	}

	if t.cfg.Username != "" {
		auth := sasl.NewPlainClient("", t.cfg.Username, t.cfg.Password)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("mailer: auth: %w", err)
		}
	}

	if err := c.Mail(from, nil); err != nil {
		return fmt.Errorf("mailer: MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("mailer: RCPT TO: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mailer: DATA: %w", err)
	}
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}
	if _, err := w.Write(msg.Bytes()); err != nil {
		_ = w.Close()
		return fmt.Errorf("mailer: writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: message rejected: %w", err)
	}

	return c.Quit()
}

// LogTransport writes a summary of each message to the log instead of
// sending it. Addresses are masked.
type LogTransport struct {
	logger *logging.Logger
}

// NewLogTransport creates a LogTransport. A nil logger uses the global one.
func NewLogTransport(logger *logging.Logger) *LogTransport {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	to, err := envelopeAddress(msg.To)
	if err != nil || to == "" {
		return ErrNoRecipient
	}
	replyTo := ""
	if addr, err := mail.ParseAddress(msg.ReplyTo); err == nil {
		replyTo = addr.Address
	}
	t.logger.Info("[MAIL] to=%s reply-to=%s subject=%s size=%d",
		utils.MaskEmail(to), utils.MaskEmail(replyTo), msg.Subject, len(msg.Bytes()))
	return nil
}

func envelopeAddress(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
