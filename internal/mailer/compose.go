package mailer

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Subject is the subject line of every contact notification.
const Subject = "Новая заявка с сайта APEX DRIVE"

// Fields are the validated form values placed into the notification.
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

var headerEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Compose builds the notification sent to the site owner. The visitor's
// address goes into Reply-To so the owner can answer directly.
func Compose(from, to string, f Fields) Message {
	return Message{
		From:    from,
		To:      to,
		ReplyTo: fmt.Sprintf(`"%s" <%s>`, headerEscaper.Replace(f.Name), f.Email),
		Subject: EncodeSubject(Subject),
		Headers: []Header{
			{Key: "MIME-Version", Value: "1.0"},
			{Key: "Content-Type", Value: "text/plain; charset=UTF-8"},
			{Key: "Content-Transfer-Encoding", Value: "8bit"},
		},
		Body: fmt.Sprintf("Имя: %s\nEmail: %s\nТелефон: %s\nСообщение:\n%s\n",
			f.Name, f.Email, f.Phone, NormalizeNewlines(f.Message)),
	}
}

// EncodeSubject returns s as a single RFC 2047 B-encoded UTF-8 word. The
// word is never split, so it may exceed 75 characters for long input.
func EncodeSubject(s string) string {
	return "=?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(s)) + "?="
}

// NormalizeNewlines converts CRLF and lone CR to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
