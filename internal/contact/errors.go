package contact

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/osa911/apexdrive/internal/i18n"
)

// LocalizedError is an error that can be shown to the visitor.
type LocalizedError interface {
	error
	Localize(lang i18n.Lang) string
}

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field string
	Key   i18n.MessageKey
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid field %q (%s)", e.Field, e.Key)
}

func (e *ValidationError) Localize(lang i18n.Lang) string {
	return i18n.Translate(e.Key, lang)
}

// RateLimitError reports that the session is still in its cooldown.
type RateLimitError struct {
	Seconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("contact: cooldown active, %ds left", e.Seconds)
}

func (e *RateLimitError) Localize(lang i18n.Lang) string {
	return i18n.Format(i18n.MsgCooldown, lang, map[string]string{
		"seconds": strconv.Itoa(e.Seconds),
	})
}

// ConfigurationError reports a broken server-side setting, such as a
// malformed recipient address.
type ConfigurationError struct {
	Setting string
	Key     i18n.MessageKey
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("contact: misconfigured %s", e.Setting)
}

func (e *ConfigurationError) Localize(lang i18n.Lang) string {
	return i18n.Translate(e.Key, lang)
}

// TransportError wraps a mail delivery failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact: mail delivery failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Localize(lang i18n.Lang) string {
	return i18n.Translate(i18n.MsgSendError, lang)
}

// MethodNotAllowedError is returned for anything but POST. Its message is
// always Russian since the language field is never read.
type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("contact: method %s not allowed", e.Method)
}

func (e *MethodNotAllowedError) Localize(i18n.Lang) string {
	return i18n.Translate(i18n.MsgMethodNotAllowed, i18n.RU)
}

// Message returns the visitor-facing text for err in lang. Errors that are
// not LocalizedError map to the generic send error.
func Message(err error, lang i18n.Lang) string {
	var le LocalizedError
	if errors.As(err, &le) {
		return le.Localize(lang)
	}
	return i18n.Translate(i18n.MsgSendError, lang)
}
