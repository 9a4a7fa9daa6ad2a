// Package mailer composes the contact form notification and hands it to an
// outgoing mail transport.
package mailer

import (
	"bytes"
	"strings"
	"time"
)

// Header is a single raw header line. Values must already be encoded.
type Header struct {
	Key   string
	Value string
}

// Message is a rendered plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	// Subject is the encoded header value.
	Subject string
	Date    time.Time
	Headers []Header
	Body    string
}

// Bytes renders the message as it is written to the DATA stream: CRLF
// separated headers, a blank line, then the body with CRLF line endings.
func (m Message) Bytes() []byte {
	var buf bytes.Buffer

	writeHeader := func(key, value string) {
		if value == "" {
			return
		}
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	if !m.Date.IsZero() {
		writeHeader("Date", m.Date.Format(time.RFC1123Z))
	}
	writeHeader("From", m.From)
	writeHeader("To", m.To)
	writeHeader("Subject", m.Subject)
	writeHeader("Reply-To", m.ReplyTo)
	for _, h := range m.Headers {
		writeHeader(h.Key, h.Value)
	}
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buf.Bytes()
}

// Header returns the value of the first header named key, or "".
func (m Message) Header(key string) string {
	switch strings.ToLower(key) {
	case "from":
		return m.From
	case "to":
		return m.To
	case "subject":
		return m.Subject
	case "reply-to":
		return m.ReplyTo
	}
	for _, h := range m.Headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value
		}
	}
	return ""
}
