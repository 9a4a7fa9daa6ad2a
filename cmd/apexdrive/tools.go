package main

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/osa911/apexdrive/internal/config"
	"github.com/osa911/apexdrive/internal/mailer"
	"github.com/osa911/apexdrive/internal/phone"
)

var phoneCmd = &cobra.Command{
	Use:   "phone <number>...",
	Short: "Print phone numbers the way the contact form stores them",
	Example: `  apexdrive phone "+7 (912) 345-67-89" 89123456789`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, raw := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", raw, phone.Normalize(raw))
		}
	},
}

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Mail transport tools",
}

var mailTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification through the configured transport",
	Long: `Send a sample contact notification through MAIL_TRANSPORT to check the
relay settings. The message goes to --to, or CONTACT_RECIPIENT when unset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := initLogger(cfg); err != nil {
			return err
		}
		defer logger.Close()

		to, _ := cmd.Flags().GetString("to")
		if to == "" {
			to = cfg.Recipient
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")

		msg := mailer.Compose(cfg.Sender, to, mailer.Fields{
			Name:    "APEX DRIVE",
			Email:   cfg.Sender,
			Phone:   "+70000000000",
			Message: "Test message sent by apexdrive mail test.",
		})
		msg.Date = time.Now()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		// Spinner while sending
		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Sending test message to %s via %s...", to, cfg.MailTransport)
		s.Writer = cmd.ErrOrStderr()
		s.Start()
		err = newTransport(cfg, logger, nil).Send(ctx, msg)
		s.Stop()

		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Test message sent")
		return nil
	},
}

func init() {
	mailTestCmd.Flags().String("to", "", "Recipient address (defaults to CONTACT_RECIPIENT)")
	mailTestCmd.Flags().Duration("timeout", 30*time.Second, "Give up after this long")
	mailCmd.AddCommand(mailTestCmd)
}
