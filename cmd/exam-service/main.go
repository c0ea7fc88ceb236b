package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SAP-F-2025/exam-service/internal/auth"
	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/SAP-F-2025/exam-service/internal/handlers"
	"github.com/SAP-F-2025/exam-service/internal/notifier"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/repositories/memory"
	"github.com/SAP-F-2025/exam-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/pkg"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exam-service",
		Short: "Timed multiple-choice exam service",
	}

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), resultsCmd())

	// bare `exam-service` serves
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addLogFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("log-level", "", "Log level (debug, info, warn, error)")
	f.String("log-format", "", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().StringP("addr", "a", "", "HTTP listen address (defaults to :$PORT)")
	addLogFlags(cmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}
	addLogFlags(cmd)
	return cmd
}

func resultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Print the results roster of a test",
		RunE:  runResults,
	}
	cmd.Flags().String("test-id", "", "Test identifier (required)")
	addLogFlags(cmd)
	_ = cmd.MarkFlagRequired("test-id")
	return cmd
}

// setup loads configuration and builds the process logger from it and the command flags.
func setup(cmd *cobra.Command) (*config.Config, *viper.Viper, *slog.Logger, error) {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := utils.NewSlog(utils.LogOptions{
		Environment: cfg.Environment,
		Level:       v.GetString("log-level"),
		Format:      v.GetString("log-format"),
	})
	slog.SetDefault(logger)
	return cfg, v, logger, nil
}

func openRepository(cfg *config.Config, logger *slog.Logger) (repositories.Repository, error) {
	switch cfg.DatabaseDriver {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepository(), nil
	case "", "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return postgres.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, v, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}

	cacheService, closeCache := pkg.NewCache(cfg, logger)
	defer closeCache()

	publisher, local, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if local != nil {
		messages, err := local.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("subscribe to notifications: %w", err)
		}
		var sender notifier.Sender
		if cfg.Mail.Enabled() {
			sender = notifier.NewSMTPSender(cfg.Mail)
		} else {
			logger.Info("SMTP not configured, submission receipts are not mailed")
		}
		go notifier.NewMailWorker(sender, cfg.Mail.From, logger).Run(ctx, messages)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Cache:     cacheService,
		Publisher: publisher,
		Tokens:    tokens,
		Logger:    logger,
		CacheTTL:  cfg.CacheTTL,
	})

	appLogger := utils.NewSlogLogger(logger)
	router := handlers.NewRouter(handlers.NewHandlerManager(serviceManager, tokens, appLogger), appLogger, cfg.AllowedOrigins)

	addr := v.GetString("addr")
	if addr == "" {
		addr = ":" + cfg.Port
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"addr", addr,
			"environment", cfg.Environment,
			"database", cfg.DatabaseDriver,
			"events", cfg.Events.Publisher)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, _, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("Database schema is up to date")
	return nil
}

func runResults(cmd *cobra.Command, _ []string) error {
	cfg, v, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseDriver == "memory" {
		return errors.New("results needs a persistent database driver")
	}

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}

	manager := services.NewServiceManager(services.Dependencies{Repo: repo, Logger: logger})
	resp, err := manager.Result().TestResults(cmd.Context(), v.GetString("test-id"))
	if err != nil {
		color.Red("Could not load results: %v", err)
		return err
	}

	if len(resp.Results) == 0 {
		color.Yellow("No attempts recorded for test %s", resp.TestID)
		return nil
	}

	color.Cyan("\nResults for test %s", resp.TestID)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Register No", "Name", "Department", "Score", "Percentage", "Tab Switches", "Malpractice", "Submitted"})
	malpractice := 0
	for _, r := range resp.Results {
		flag := "No"
		if r.IsMalpractice {
			flag = "Yes"
			malpractice++
		}
		table.Append([]string{
			r.RegisterNumber,
			r.StudentName,
			r.Department,
			fmt.Sprintf("%d/%d", r.Score, r.Total),
			fmt.Sprintf("%.2f%%", r.Percentage),
			fmt.Sprintf("%d", r.TabSwitches),
			flag,
			r.SubmittedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()

	if malpractice > 0 {
		color.Red("%d of %d attempts flagged for malpractice", malpractice, len(resp.Results))
	} else {
		color.Green("%d attempts, none flagged", len(resp.Results))
	}
	return nil
}
