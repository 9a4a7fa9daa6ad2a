// Package contact implements the contact form submission pipeline: spam and
// cooldown checks, field validation, composing the notification, and
// handing it to the mail transport.
package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osa911/apexdrive/internal/cooldown"
	"github.com/osa911/apexdrive/internal/i18n"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/mailer"
	"github.com/osa911/apexdrive/internal/metrics"
	"github.com/osa911/apexdrive/internal/notify"
	"github.com/osa911/apexdrive/internal/phone"
	"github.com/osa911/apexdrive/internal/utils"
)

// Submission is one posted contact form.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Message string
	// Company is the hidden honeypot field.
	Company string
	Lang    string
}

// Result is the JSON answer returned to the page.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Err is the reason a submission was refused, nil on success.
	Err error `json:"-"`
}

// Recorder counts submissions by outcome.
type Recorder interface {
	IncSubmission(outcome string)
}

// Config holds the addresses used for every notification.
type Config struct {
	Recipient string
	Sender    string
	// NotifyTimeout bounds the chat mirror call. Defaults to 5s.
	NotifyTimeout time.Duration
}

// Service processes submissions.
type Service struct {
	cfg       Config
	transport mailer.Transport
	tracker   *cooldown.Tracker
	notifier  notify.Notifier
	recorder  Recorder
	validate  *validator.Validate
	logger    *logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier mirrors delivered submissions to n.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRecorder counts outcomes with r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger overrides the global logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service.
func NewService(cfg Config, transport mailer.Transport, tracker *cooldown.Tracker, opts ...Option) *Service {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}
	s := &Service{
		cfg:       cfg,
		transport: transport,
		tracker:   tracker,
		validate:  validator.New(),
		logger:    logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cooldown returns the server cooldown window.
func (s *Service) Cooldown() time.Duration {
	return s.tracker.Window()
}

// Submit runs the pipeline for one submission from sessionID.
func (s *Service) Submit(ctx context.Context, sessionID string, sub Submission) Result {
	lang := i18n.ParseLang(sub.Lang)
	log := s.logger.With("session", sessionID)

	// Bots fill the hidden field. Pretend it worked.
	if strings.TrimSpace(sub.Company) != "" {
		s.record(metrics.OutcomeHoneypot)
		log.Debug("contact: honeypot triggered")
		return s.success(lang)
	}

	if secs := s.tracker.RemainingSeconds(ctx, sessionID); secs > 0 {
		s.record(metrics.OutcomeCooldown)
		return s.failure(lang, &RateLimitError{Seconds: secs})
	}

	fields, err := s.validateFields(sub)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			s.record(metrics.OutcomeConfig)
			s.logger.Error("contact: %v", err)
		} else {
			s.record(metrics.OutcomeInvalid)
		}
		return s.failure(lang, err)
	}

	msg := mailer.Compose(s.cfg.Sender, s.cfg.Recipient, fields)
	msg.Date = time.Now()
	if err := s.transport.Send(ctx, msg); err != nil {
		s.record(metrics.OutcomeSendError)
		log.Error("contact: sending mail for %s: %v", utils.MaskEmail(fields.Email), err)
		return s.failure(lang, &TransportError{Err: err})
	}

	if err := s.tracker.Record(ctx, sessionID); err != nil {
		log.Warn("contact: recording cooldown: %v", err)
	}
	s.record(metrics.OutcomeSent)
	log.Info("contact: request from %s (%s) delivered", utils.MaskEmail(fields.Email), utils.MaskPhone(fields.Phone))

	s.mirror(ctx, fields, lang)
	return s.success(lang)
}

// validateFields trims and checks the visible fields in the order the
// visitor should see the errors.
func (s *Service) validateFields(sub Submission) (mailer.Fields, error) {
	f := mailer.Fields{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Phone:   strings.TrimSpace(sub.Phone),
		Message: strings.TrimSpace(sub.Message),
	}

	for _, field := range []struct{ name, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"message", f.Message},
	} {
		if field.value == "" {
			return f, &ValidationError{Field: field.name, Key: i18n.MsgFieldsRequired}
		}
	}

	if !s.isEmail(s.cfg.Recipient) {
		return f, &ConfigurationError{Setting: "CONTACT_RECIPIENT", Key: i18n.MsgInvalidRecipient}
	}
	if !s.isEmail(f.Email) {
		return f, &ValidationError{Field: "email", Key: i18n.MsgInvalidEmail}
	}
	if utils.HasLineBreak(f.Name) {
		return f, &ValidationError{Field: "name", Key: i18n.MsgInvalidName}
	}

	f.Phone = phone.Normalize(f.Phone)
	if f.Phone == "" {
		return f, &ValidationError{Field: "phone", Key: i18n.MsgInvalidPhone}
	}
	return f, nil
}

func (s *Service) isEmail(v string) bool {
	return s.validate.Var(v, "required,email") == nil
}

func (s *Service) mirror(ctx context.Context, f mailer.Fields, lang i18n.Lang) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	err := s.notifier.NotifyContact(ctx, notify.Contact{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
		Lang:    string(lang),
	})
	if err != nil {
		s.logger.Warn("contact: telegram notification failed: %v", err)
	}
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.IncSubmission(outcome)
	}
}

func (s *Service) success(lang i18n.Lang) Result {
	return Result{Success: true, Message: i18n.Translate(i18n.MsgSuccess, lang)}
}

func (s *Service) failure(lang i18n.Lang, err error) Result {
	return Result{Success: false, Message: Message(err, lang), Err: err}
}

// MethodNotAllowed is the answer for any non-POST request.
func MethodNotAllowed(method string) Result {
	err := &MethodNotAllowedError{Method: method}
	return Result{Success: false, Message: Message(err, i18n.RU), Err: err}
}
