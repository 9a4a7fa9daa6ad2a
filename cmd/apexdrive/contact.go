package main

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/spf13/cobra"

	"github.com/osa911/apexdrive/internal/cli"
	"github.com/osa911/apexdrive/internal/formctl"
	"github.com/osa911/apexdrive/internal/i18n"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Contact form tools",
}

var contactSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the contact form to a running server",
	Long: `Fill in the contact form and submit it the way the site's page does,
including the consent, email and client cooldown checks.

Example:
  apexdrive contact submit --url http://localhost:8080/mail.php \
    --name "Ivan" --email ivan@example.com --phone "8 912 345-67-89" \
    --message "Need a car for the weekend" --lang en`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogger(nil); err != nil {
			return err
		}

		flags := cmd.Flags()
		endpoint, _ := flags.GetString("url")
		lang, _ := flags.GetString("lang")
		consent, _ := flags.GetBool("consent")
		cooldown, _ := flags.GetDuration("cooldown")
		repeat, _ := flags.GetInt("repeat")

		values := make(map[formctl.Field]string, len(formctl.Fields))
		for _, f := range formctl.Fields {
			values[f], _ = flags.GetString(string(f))
		}

		// The jar keeps the session cookie between repeated submits
		jar, err := cookiejar.New(nil)
		if err != nil {
			return err
		}
		client := &http.Client{Timeout: 30 * time.Second, Jar: jar}

		dom := cli.NewTerminalDOM(cmd.OutOrStdout(), i18n.ParseLang(lang), values, consent)
		ctl := formctl.New(dom, formctl.NewHTTPPoster(endpoint, client),
			formctl.WithCooldown(cooldown),
			formctl.WithLogger(logger),
		)
		ctl.OnConsentChange()

		var state formctl.State
		for i := 0; i < repeat; i++ {
			if i > 0 {
				// Submitting clears the form, refill it like a visitor would
				for f, v := range values {
					dom.SetValue(f, v)
				}
				dom.SetConsent(consent)
				ctl.OnConsentChange()
			}
			state = ctl.Submit(cmd.Context())
		}

		if state != formctl.StateSucceeded {
			return fmt.Errorf("form not sent (%s)", state)
		}
		return nil
	},
}

func init() {
	f := contactSubmitCmd.Flags()
	f.String("url", "http://localhost:8080/mail.php", "Mail endpoint")
	f.String(string(formctl.FieldName), "", "Visitor name")
	f.String(string(formctl.FieldEmail), "", "Visitor email")
	f.String(string(formctl.FieldPhone), "", "Visitor phone")
	f.String(string(formctl.FieldMessage), "", "Message text")
	f.String(string(formctl.FieldCompany), "", "Hidden honeypot field, leave empty")
	f.String("lang", string(i18n.DefaultLang), "Page language (ru or en)")
	f.Bool("consent", true, "Tick the personal data consent box")
	f.Duration("cooldown", 60*time.Second, "Client cooldown between successful submits")
	f.Int("repeat", 1, "Submit the form this many times")
	contactCmd.AddCommand(contactSubmitCmd)
}
