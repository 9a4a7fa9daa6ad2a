package cli

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/apexdrive/internal/formctl"
	"github.com/osa911/apexdrive/internal/i18n"
	"github.com/osa911/apexdrive/internal/logging"
)

type posterFunc func(ctx context.Context, fields url.Values) (formctl.Response, error)

func (f posterFunc) Post(ctx context.Context, fields url.Values) (formctl.Response, error) {
	return f(ctx, fields)
}

func TestTerminalDOMDrivesController(t *testing.T) {
	var out bytes.Buffer
	dom := NewTerminalDOM(&out, i18n.EN, map[formctl.Field]string{
		formctl.FieldName:    "Anna",
		formctl.FieldEmail:   "anna@example.com",
		formctl.FieldPhone:   "8 912 345 67 89",
		formctl.FieldMessage: "Porsche 911 for Saturday",
	}, true)

	var posted url.Values
	ctl := formctl.New(dom, posterFunc(func(_ context.Context, fields url.Values) (formctl.Response, error) {
		posted = fields
		return formctl.Response{Success: true, Message: "Thank you!"}, nil
	}), formctl.WithLogger(logging.NewNop()))

	state := ctl.Submit(context.Background())

	require.Equal(t, formctl.StateSucceeded, state)
	assert.Equal(t, "+79123456789", posted.Get("phone"))
	assert.Equal(t, "en", posted.Get("lang"))
	assert.Equal(t, []string{"Thank you!"}, dom.Alerts())
	assert.Contains(t, out.String(), "Thank you!")
	assert.Empty(t, dom.Value(formctl.FieldName))
	assert.Equal(t, i18n.T(i18n.FormSubmit, i18n.EN), dom.SubmitText())
}

func TestTerminalDOMFocusHint(t *testing.T) {
	var out bytes.Buffer
	dom := NewTerminalDOM(&out, i18n.RU, nil, true)
	dom.Focus(formctl.FieldEmail)
	assert.Equal(t, "check the --email flag\n", out.String())
}
