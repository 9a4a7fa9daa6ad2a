package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osa911/apexdrive/internal/config"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/version"
)

var logger *logging.Logger

// initLogger installs the global logger from cfg, or a console-only one
// when cfg is nil.
func initLogger(cfg *config.Config) error {
	logConfig := &logging.Config{
		Level:      "info",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
	if cfg != nil {
		logConfig.Level = cfg.LogLevel
		logConfig.File = cfg.LogFile
		logConfig.LogRequests = cfg.LogRequests
	}

	if err := logging.InitLogger(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.GetGlobalLogger()
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "apexdrive",
	Short: "APEX DRIVE - car rental site server",
	Long: `APEX DRIVE serves the bilingual car rental site: the fleet catalog,
the page configuration script and the contact form mailer.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "apexdrive", version.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(phoneCmd)
	rootCmd.AddCommand(mailCmd)
	rootCmd.AddCommand(contactCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
