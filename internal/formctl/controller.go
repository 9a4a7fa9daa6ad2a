// Package formctl drives the contact form the way the site's page script
// does: local checks, a client-side cooldown, and posting to the mail
// endpoint. The page itself is abstracted behind DOM.
package formctl

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osa911/apexdrive/internal/i18n"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/phone"
	"github.com/osa911/apexdrive/internal/utils"
)

// Field names a form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
	// FieldCompany is the hidden honeypot input.
	FieldCompany Field = "company"
)

// Fields lists the inputs posted to the server, honeypot included.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage, FieldCompany}

// DOM is the part of the page the controller reads and mutates.
type DOM interface {
	Value(f Field) string
	SetValue(f Field, v string)
	Consent() bool
	SetConsent(checked bool)
	SetSubmitDisabled(disabled bool)
	SubmitText() string
	SetSubmitText(text string)
	Alert(msg string)
	Focus(f Field)
	Lang() i18n.Lang
}

// Response is the JSON answer of the mail endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Poster sends the form fields to the server.
type Poster interface {
	Post(ctx context.Context, fields url.Values) (Response, error)
}

// State of the controller.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Translator resolves a client string.
type Translator func(key i18n.ClientKey, lang i18n.Lang) string

// Controller implements the form's submit flow.
type Controller struct {
	dom       DOM
	poster    Poster
	cooldown  time.Duration
	now       func() time.Time
	translate Translator
	logger    *logging.Logger

	mu          sync.Mutex
	state       State
	lastSuccess time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithCooldown sets the client cooldown. Zero disables it.
func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTranslator replaces the built-in client table, e.g. with the one
// served by /config.js.
func WithTranslator(t Translator) Option {
	return func(c *Controller) { c.translate = t }
}

// WithLogger sets the logger used for transport errors.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller and disables the submit button until consent is
// given.
func New(dom DOM, poster Poster, opts ...Option) *Controller {
	c := &Controller{
		dom:       dom,
		poster:    poster,
		now:       time.Now,
		translate: i18n.T,
		logger:    logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dom.SetSubmitDisabled(true)
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnConsentChange enables submit exactly when the consent box is checked.
func (c *Controller) OnConsentChange() {
	c.dom.SetSubmitDisabled(!c.dom.Consent())
}

// Submit runs one submit attempt and returns the resulting state. Attempts
// blocked before posting leave the state at idle. The attempt claims the
// submitting state up front, so a concurrent call returns StateSubmitting
// without posting.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return StateSubmitting
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	lang := c.dom.Lang()

	if strings.TrimSpace(c.dom.Value(FieldCompany)) != "" {
		return c.setState(StateIdle)
	}

	if !c.dom.Consent() {
		c.dom.Alert(c.text(i18n.FormPrivacyReminder, lang,
			"Пожалуйста, дайте согласие на обработку персональных данных."))
		return c.setState(StateIdle)
	}

	if !utils.IsBrowserValidEmail(strings.TrimSpace(c.dom.Value(FieldEmail))) {
		c.dom.Alert(c.text(i18n.FormEmailInvalid, lang, "Пожалуйста, укажите корректный email."))
		c.dom.Focus(FieldEmail)
		return c.setState(StateIdle)
	}

	if left := c.cooldownLeft(); left > 0 {
		secs := int(math.Ceil(left.Seconds()))
		tmpl := c.text(i18n.FormCooldown, lang, "Подождите {seconds} с перед повторной отправкой.")
		c.dom.Alert(strings.Replace(tmpl, "{seconds}", strconv.Itoa(secs), 1))
		return c.setState(StateIdle)
	}

	originalText := c.dom.SubmitText()
	c.dom.SetSubmitDisabled(true)
	c.dom.SetSubmitText(sendingText(lang))

	result := c.post(ctx, lang)

	c.dom.SetSubmitText(originalText)
	if c.dom.Consent() {
		c.dom.SetSubmitDisabled(false)
	}
	return c.setState(result)
}

func (c *Controller) post(ctx context.Context, lang i18n.Lang) State {
	fields := url.Values{}
	for _, f := range Fields {
		fields.Set(string(f), c.dom.Value(f))
	}
	fields.Set(string(FieldPhone), phone.Normalize(c.dom.Value(FieldPhone)))
	fields.Set("lang", string(lang))

	resp, err := c.poster.Post(ctx, fields)
	if err != nil {
		c.logger.Error("contact form: %v", err)
		c.dom.Alert(c.text(i18n.FormError, lang, "Произошла ошибка при отправке формы. Попробуйте позже."))
		return StateFailed
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = c.text(i18n.FormError, lang, "Не удалось отправить форму.")
		}
		c.dom.Alert(msg)
		return StateFailed
	}

	c.dom.Alert(resp.Message)
	c.mu.Lock()
	c.lastSuccess = c.now()
	c.mu.Unlock()
	for _, f := range []Field{FieldName, FieldEmail, FieldPhone, FieldMessage} {
		c.dom.SetValue(f, "")
	}
	c.dom.SetConsent(false)
	c.dom.SetSubmitDisabled(true)
	return StateSucceeded
}

func (c *Controller) cooldownLeft() time.Duration {
	if c.cooldown <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastSuccess.IsZero() {
		return 0
	}
	elapsed := c.now().Sub(c.lastSuccess)
	if elapsed >= c.cooldown {
		return 0
	}
	return c.cooldown - elapsed
}

func (c *Controller) setState(s State) State {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	return s
}

func (c *Controller) text(key i18n.ClientKey, lang i18n.Lang, fallback string) string {
	if t := c.translate(key, lang); t != "" {
		return t
	}
	return fallback
}

func sendingText(lang i18n.Lang) string {
	if lang == i18n.RU {
		return "Отправка..."
	}
	return "Sending..."
}
