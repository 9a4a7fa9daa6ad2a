// Package cli adapts the contact form controller to a terminal so the
// site's submit flow can be driven from the command line.
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/osa911/apexdrive/internal/formctl"
	"github.com/osa911/apexdrive/internal/i18n"
)

// TerminalDOM is a formctl.DOM backed by flag values. Alerts and focus
// changes are printed to out.
type TerminalDOM struct {
	mu       sync.Mutex
	out      io.Writer
	lang     i18n.Lang
	values   map[formctl.Field]string
	consent  bool
	disabled bool
	button   string
	alerts   []string
}

// NewTerminalDOM creates a form pre-filled with values.
func NewTerminalDOM(out io.Writer, lang i18n.Lang, values map[formctl.Field]string, consent bool) *TerminalDOM {
	v := make(map[formctl.Field]string, len(values))
	for k, val := range values {
		v[k] = val
	}
	return &TerminalDOM{
		out:     out,
		lang:    lang,
		values:  v,
		consent: consent,
		button:  i18n.T(i18n.FormSubmit, lang),
	}
}

func (d *TerminalDOM) Value(f formctl.Field) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[f]
}

func (d *TerminalDOM) SetValue(f formctl.Field, v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[f] = v
}

func (d *TerminalDOM) Consent() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.consent
}

func (d *TerminalDOM) SetConsent(checked bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.consent = checked
}

func (d *TerminalDOM) SetSubmitDisabled(disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disabled = disabled
}

// SubmitDisabled reports the state of the submit button.
func (d *TerminalDOM) SubmitDisabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabled
}

func (d *TerminalDOM) SubmitText() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.button
}

func (d *TerminalDOM) SetSubmitText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.button = text
}

func (d *TerminalDOM) Alert(msg string) {
	d.mu.Lock()
	d.alerts = append(d.alerts, msg)
	d.mu.Unlock()
	fmt.Fprintln(d.out, msg)
}

// Alerts returns every message shown so far.
func (d *TerminalDOM) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.alerts...)
}

func (d *TerminalDOM) Focus(f formctl.Field) {
	fmt.Fprintf(d.out, "check the --%s flag\n", f)
}

func (d *TerminalDOM) Lang() i18n.Lang {
	return d.lang
}
