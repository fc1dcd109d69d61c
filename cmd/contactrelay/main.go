package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/server"
	"github.com/osa911/contactrelay/internal/service"
	"github.com/osa911/contactrelay/internal/telemetry"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/spf13/cobra"
)

const serviceName = "contactrelay"

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Contact form to email relay",
	Long: `contactrelay accepts contact form submissions over HTTP, validates them
and forwards each one as an email to a configured recipient.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Configuration is read from the environment and
from .env files; flags override the matching variables.

Example:
  contactrelay serve
  contactrelay serve --listen :9090 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("listen") {
			cfg.ListenAddr, _ = cmd.Flags().GetString("listen")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		return serve(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()
		fmt.Printf("contactrelay %s\n", version.Info())
		fmt.Printf("Go version: %s\n", info.GoVersion)
		fmt.Printf("Platform: %s\n", info.Platform)
	},
}

func serve(cfg *config.Config) error {
	logConfig := &logging.LogConfig{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
	}
	if err := logConfig.Validate(); err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}
	if err := logging.InitLogger(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting %s %s in %s mode", serviceName, version.Info(), cfg.Environment)

	if err := telemetry.InitSentry(cfg.SentryDSN, cfg.Environment, version.Version); err != nil {
		logger.Warn("Sentry disabled: %v", err)
	}
	defer telemetry.FlushSentry(2 * time.Second)

	// Set up context and signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, serviceName, version.Version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	sender, err := mail.NewSender(ctx, cfg.Mail, logger)
	if err != nil {
		return fmt.Errorf("failed to create mail sender: %w", err)
	}
	logger.Info("Mail provider: %s", sender.Name())

	dispatcher := mail.NewDispatcher(sender, mail.DispatcherConfig{
		Timeout:    cfg.Mail.Timeout,
		RetryDelay: cfg.Mail.RetryDelay,
	}, logger)

	contactService := service.NewContactService(dispatcher, cfg.Mail.From, cfg.Mail.To)

	srv, err := server.NewServer(cfg, server.Dependencies{
		ContactService: contactService,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	serveCmd.Flags().String("listen", ":8080", "Address to listen on (overrides LISTEN_ADDR)")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
