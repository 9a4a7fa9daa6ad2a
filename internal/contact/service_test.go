package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/osa911/apexdrive/internal/cooldown"
	"github.com/osa911/apexdrive/internal/i18n"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/mailer"
	"github.com/osa911/apexdrive/internal/notify"
	"github.com/osa911/apexdrive/internal/session"
)

type mockTransport struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *mockTransport) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockTransport) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type mockNotifier struct {
	contacts []notify.Contact
	err      error
}

func (m *mockNotifier) NotifyContact(_ context.Context, c notify.Contact) error {
	m.contacts = append(m.contacts, c)
	return m.err
}

type countingRecorder map[string]int

func (r countingRecorder) IncSubmission(outcome string) { r[outcome]++ }

type fixture struct {
	svc       *Service
	transport *mockTransport
	now       time.Time
	recorder  countingRecorder
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFixture(t *testing.T, window time.Duration, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		transport: &mockTransport{},
		now:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		recorder:  countingRecorder{},
	}
	store := session.NewMemoryStore(24 * time.Hour)
	tracker := cooldown.NewTracker(window, store,
		cooldown.WithClock(func() time.Time { return f.now }),
		cooldown.WithLogger(logging.NewNop()),
	)
	opts = append([]Option{WithLogger(logging.NewNop()), WithRecorder(f.recorder)}, opts...)
	f.svc = NewService(Config{
		Recipient: "owner@apexdrive.ru",
		Sender:    "noreply@apexdrive.ru",
	}, f.transport, tracker, opts...)
	return f
}

func validSubmission() Submission {
	return Submission{
		Name:    "Ivan Petrov",
		Email:   "ivan@example.com",
		Phone:   "8 (912) 345-67-89",
		Message: "Хочу арендовать BMW M5 на выходные",
		Lang:    "ru",
	}
}

const sid = "3f1b8f0e-8f5a-4d6e-9a51-0f2f7a6f9c11"

func TestSubmitSendsMail(t *testing.T) {
	f := newFixture(t, time.Minute)

	res := f.svc.Submit(context.Background(), sid, validSubmission())
	require.True(t, res.Success)
	assert.Equal(t, "Спасибо, ваша заявка отправлена!", res.Message)
	assert.NoError(t, res.Err)

	require.Equal(t, 1, f.transport.count())
	msg := f.transport.sent[0]
	assert.Equal(t, "owner@apexdrive.ru", msg.To)
	assert.Equal(t, "noreply@apexdrive.ru", msg.From)
	assert.Equal(t, `"Ivan Petrov" <ivan@example.com>`, msg.ReplyTo)
	assert.Contains(t, msg.Body, "Телефон: +79123456789\n")
	assert.Equal(t, 1, f.recorder["sent"])
}

func TestHoneypotSkipsTransport(t *testing.T) {
	f := newFixture(t, time.Minute)

	sub := validSubmission()
	sub.Company = "  ACME Corp "
	sub.Lang = "en"
	res := f.svc.Submit(context.Background(), sid, sub)

	assert.True(t, res.Success)
	assert.Equal(t, "Thank you, your request has been sent!", res.Message)
	assert.Zero(t, f.transport.count())
	assert.Equal(t, 1, f.recorder["honeypot"])

	// A honeypot hit does not start the cooldown.
	res = f.svc.Submit(context.Background(), sid, validSubmission())
	assert.True(t, res.Success)
	assert.Equal(t, 1, f.transport.count())
}

func TestCooldown(t *testing.T) {
	f := newFixture(t, 60*time.Second)
	ctx := context.Background()

	require.True(t, f.svc.Submit(ctx, sid, validSubmission()).Success)

	f.advance(15 * time.Second)
	res := f.svc.Submit(ctx, sid, validSubmission())
	assert.False(t, res.Success)
	assert.Equal(t, "Подождите 45 с перед повторной отправкой.", res.Message)
	var rl *RateLimitError
	require.ErrorAs(t, res.Err, &rl)
	assert.Equal(t, 45, rl.Seconds)

	sub := validSubmission()
	sub.Lang = "en"
	res = f.svc.Submit(ctx, sid, sub)
	assert.Equal(t, "Please wait 45s before sending again.", res.Message)

	// Other sessions are unaffected.
	assert.True(t, f.svc.Submit(ctx, "b8a4f0a2-5c7e-4e55-8f0e-2d9a9e1b7c33", validSubmission()).Success)

	f.advance(45 * time.Second)
	assert.True(t, f.svc.Submit(ctx, sid, validSubmission()).Success)
	assert.Equal(t, 3, f.transport.count())
}

func TestCooldownDisabled(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.True(t, f.svc.Submit(ctx, sid, validSubmission()).Success)
	assert.True(t, f.svc.Submit(ctx, sid, validSubmission()).Success)
	assert.Equal(t, 2, f.transport.count())
}

func TestInvalidEmailLocalized(t *testing.T) {
	f := newFixture(t, time.Minute)

	for lang, want := range map[string]string{
		"ru": "Укажите корректный email.",
		"en": "Please provide a valid email address.",
	} {
		sub := validSubmission()
		sub.Email = "not-an-email"
		sub.Lang = lang
		res := f.svc.Submit(context.Background(), sid, sub)

		assert.False(t, res.Success, lang)
		assert.Equal(t, want, res.Message, lang)
		var ve *ValidationError
		require.ErrorAs(t, res.Err, &ve)
		assert.Equal(t, i18n.MsgInvalidEmail, ve.Key)
	}
	assert.Zero(t, f.transport.count())
}

func TestNameWithNewlineRejected(t *testing.T) {
	f := newFixture(t, time.Minute)

	for _, name := range []string{"Ivan\nBcc: spam@example.com", "Ivan\rPetrov"} {
		sub := validSubmission()
		sub.Name = name
		res := f.svc.Submit(context.Background(), sid, sub)
		assert.False(t, res.Success)
		assert.Equal(t, "Имя содержит недопустимые символы.", res.Message)
	}
	assert.Zero(t, f.transport.count())
}

func TestRequiredFields(t *testing.T) {
	f := newFixture(t, time.Minute)

	mutations := []func(*Submission){
		func(s *Submission) { s.Name = "   " },
		func(s *Submission) { s.Email = "" },
		func(s *Submission) { s.Phone = "\t" },
		func(s *Submission) { s.Message = "" },
	}
	for _, mutate := range mutations {
		sub := validSubmission()
		mutate(&sub)
		res := f.svc.Submit(context.Background(), sid, sub)
		assert.False(t, res.Success)
		assert.Equal(t, "Пожалуйста, заполните все обязательные поля.", res.Message)
	}
	assert.Zero(t, f.transport.count())
}

func TestPhoneWithoutDigitsRejected(t *testing.T) {
	f := newFixture(t, time.Minute)

	sub := validSubmission()
	sub.Phone = "call me"
	sub.Lang = "en"
	res := f.svc.Submit(context.Background(), sid, sub)
	assert.False(t, res.Success)
	assert.Equal(t, "Please provide a valid phone number.", res.Message)
}

func TestInvalidRecipient(t *testing.T) {
	transport := &mockTransport{}
	tracker := cooldown.NewTracker(time.Minute, session.NewMemoryStore(time.Hour), cooldown.WithLogger(logging.NewNop()))
	svc := NewService(Config{Recipient: "owner-at-apexdrive", Sender: "noreply@apexdrive.ru"},
		transport, tracker, WithLogger(logging.NewNop()))

	res := svc.Submit(context.Background(), sid, validSubmission())
	assert.False(t, res.Success)
	assert.Equal(t, "Неверно указан email получателя в конфигурации.", res.Message)
	var ce *ConfigurationError
	assert.ErrorAs(t, res.Err, &ce)
	assert.Zero(t, transport.count())
}

func TestTransportFailure(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.transport.err = errors.New("connection refused")

	res := f.svc.Submit(context.Background(), sid, validSubmission())
	assert.False(t, res.Success)
	assert.Equal(t, "Не удалось отправить письмо. Пожалуйста, попробуйте позже.", res.Message)
	var te *TransportError
	require.ErrorAs(t, res.Err, &te)
	assert.ErrorIs(t, res.Err, f.transport.err)

	// A failed send does not start the cooldown.
	f.transport.err = nil
	assert.True(t, f.svc.Submit(context.Background(), sid, validSubmission()).Success)
}

func TestUnknownLanguageFallsBackToRussian(t *testing.T) {
	f := newFixture(t, time.Minute)

	sub := validSubmission()
	sub.Email = "bad"
	sub.Lang = "DE"
	res := f.svc.Submit(context.Background(), sid, sub)
	assert.Equal(t, "Укажите корректный email.", res.Message)

	sub.Lang = "EN"
	res = f.svc.Submit(context.Background(), sid, sub)
	assert.Equal(t, "Please provide a valid email address.", res.Message)
}

func TestMessageNewlinesNormalized(t *testing.T) {
	f := newFixture(t, time.Minute)

	sub := validSubmission()
	sub.Message = "first\r\nsecond\rthird"
	require.True(t, f.svc.Submit(context.Background(), sid, sub).Success)
	assert.True(t, strings.HasSuffix(f.transport.sent[0].Body, "Сообщение:\nfirst\nsecond\nthird\n"))
}

func TestNotifierFailureDoesNotChangeResult(t *testing.T) {
	n := &mockNotifier{err: errors.New("telegram down")}
	f := newFixture(t, time.Minute, WithNotifier(n))

	res := f.svc.Submit(context.Background(), sid, validSubmission())
	assert.True(t, res.Success)
	require.Len(t, n.contacts, 1)
	assert.Equal(t, "+79123456789", n.contacts[0].Phone)
	assert.Equal(t, "ru", n.contacts[0].Lang)
}

func TestMethodNotAllowed(t *testing.T) {
	res := MethodNotAllowed("GET")
	assert.False(t, res.Success)
	assert.Equal(t, "Неверный метод запроса.", res.Message)
	var me *MethodNotAllowedError
	assert.ErrorAs(t, res.Err, &me)
}

func TestLogsCarrySession(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(t, time.Minute, WithLogger(logging.NewWithCore(core, false)))

	require.True(t, f.svc.Submit(context.Background(), sid, validSubmission()).Success)

	entries := logs.FilterMessageSnippet("delivered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, sid, entries[0].ContextMap()["session"])
	assert.NotContains(t, entries[0].Message, "ivan@example.com")
}
