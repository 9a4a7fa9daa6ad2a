package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osa911/apexdrive/internal/api/handlers"
	"github.com/osa911/apexdrive/internal/api/middleware"
	"github.com/osa911/apexdrive/internal/catalog"
	"github.com/osa911/apexdrive/internal/config"
	"github.com/osa911/apexdrive/internal/contact"
	"github.com/osa911/apexdrive/internal/cooldown"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/mailer"
	"github.com/osa911/apexdrive/internal/metrics"
	"github.com/osa911/apexdrive/internal/notify"
	"github.com/osa911/apexdrive/internal/server"
	"github.com/osa911/apexdrive/internal/server/routes"
	"github.com/osa911/apexdrive/internal/session"
	"github.com/osa911/apexdrive/internal/tasks"
	"github.com/osa911/apexdrive/internal/telemetry"
	"github.com/osa911/apexdrive/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the site server. Configuration is read from the environment and
.env files (see .env.example).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if errors.Is(err, logging.ErrInvalidConfig) {
			return fmt.Errorf("%w (see .env.example)", err)
		}
		if err != nil {
			return err
		}
		if err := initLogger(cfg); err != nil {
			return err
		}
		defer logger.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	logger.Info("Starting APEX DRIVE %s in %s mode", version.Info(), cfg.Environment)

	// Exporter failures only disable tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, version.Version)
	if errors.Is(err, logging.ErrService) {
		logger.Warn("Tracing disabled: %v", err)
	} else if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	m := metrics.New()

	store, err := openStore(ctx, cfg)
	if errors.Is(err, logging.ErrConnection) {
		logger.Error("Session store %s is unreachable: %v", cfg.SessionStore, err)
	}
	if err != nil {
		return logging.WrapError(err, "opening session store")
	}
	defer store.Close()
	logger.Info("Session store: %s", cfg.SessionStore)

	svc := newContactService(cfg, store, m, logger)

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	site, err := handlers.NewSiteConfigHandler(handlers.SiteConfig{
		USDExchangeRate: cfg.USDExchangeRate,
		Contact: handlers.SiteContactConfig{
			SubmissionCooldownSeconds: cfg.ClientCooldown(),
		},
	})
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})

	// Start session cleanup task
	sweeps := []tasks.Sweep{{
		Name: "rate-limiter",
		Sweeper: tasks.SweepFunc(func(context.Context) (int64, error) {
			return int64(limiter.Prune()), nil
		}),
	}}
	if sw, ok := store.(session.Sweeper); ok {
		sweeps = append(sweeps, tasks.Sweep{Name: cfg.SessionStore, Sweeper: sw})
	}
	cleanup := tasks.NewSessionCleanup(tasks.DefaultCleanupInterval, logger, sweeps...)
	cleanup.Start()
	defer cleanup.Stop()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		StaticDir:      cfg.StaticDir,
		TrustedProxies: cfg.TrustedProxies,
		Global: routes.GlobalOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			Production:     cfg.IsProduction(),
			SessionTTL:     cfg.SessionTTL,
		},
	}, &routes.Handlers{
		Contact:    handlers.NewContactHandler(svc),
		Catalog:    handlers.NewCatalogHandler(cat, cfg.USDExchangeRate),
		Health:     handlers.NewHealthHandler(store),
		SiteConfig: site,
		Metrics:    m.Handler(),
	}, &routes.Middleware{
		RateLimiter: limiter,
	}, logger)

	return srv.Start(ctx)
}

// openStore connects the session store selected by SESSION_STORE.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		return session.OpenRedis(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		}, cfg.SessionTTL)
	case "postgres":
		return session.OpenPostgres(ctx, cfg.DatabaseURL, cfg.SessionTTL)
	case "memory", "":
		return session.NewMemoryStore(cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// newTransport builds the mail transport selected by MAIL_TRANSPORT.
func newTransport(cfg *config.Config, logger *logging.Logger, observer mailer.Observer) mailer.Transport {
	var t mailer.Transport
	switch cfg.MailTransport {
	case "log":
		t = mailer.NewLogTransport(logger)
	default:
		t = mailer.NewSMTPTransport(mailer.SMTPConfig{
			Addr:     cfg.SMTP.Addr(),
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			StartTLS: cfg.SMTP.StartTLS,
		})
	}
	return mailer.Instrument(t, cfg.MailTransport, observer)
}

func newContactService(cfg *config.Config, store session.Store, m *metrics.Metrics, logger *logging.Logger) *contact.Service {
	tracker := cooldown.NewTracker(cfg.Cooldown(), store, cooldown.WithLogger(logger))

	opts := []contact.Option{
		contact.WithRecorder(m),
		contact.WithLogger(logger),
	}
	if n := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID); n != nil {
		opts = append(opts, contact.WithNotifier(n))
		logger.Info("Telegram mirror enabled")
	}

	return contact.NewService(contact.Config{
		Recipient: cfg.Recipient,
		Sender:    cfg.Sender,
	}, newTransport(cfg, logger, m), tracker, opts...)
}
