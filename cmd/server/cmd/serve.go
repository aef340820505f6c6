package cmd

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

	"github.com/careerbridge/server/internal/api"
	"github.com/careerbridge/server/internal/audit"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/config"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/moderation"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/email"
	"github.com/careerbridge/server/internal/jobs"
	"github.com/careerbridge/server/internal/metrics"
	"github.com/careerbridge/server/internal/notify"
	"github.com/careerbridge/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CareerBridge HTTP server",
	Long: `Start the HTTP server and the background job workers.

The server will:
- Load configuration from environment variables
- Bootstrap the first admin account if ADMIN_* env vars are set
- Start River workers for notification emails and approval SLA sweeps
- Handle graceful shutdown on SIGINT/SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("environment", cfg.Environment).Msg("starting careerbridge server")

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.Connect(poolCtx, cfg.Database)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return err
	}

	statsCtx, statsCancel := context.WithCancel(context.Background())
	defer statsCancel()
	go metrics.CollectPoolStats(statsCtx, pool, 15*time.Second)

	if err := bootstrapAdmin(context.Background(), cfg, repo, logger); err != nil {
		logger.Error().Err(err).Msg("admin bootstrap failed")
	}

	emailService, err := email.NewService(cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("email service init: %w", err)
	}

	var dispatcher *notify.Dispatcher
	var riverClient *river.Client[pgx.Tx]
	if cfg.Jobs.Enabled {
		workers := river.NewWorkers()
		river.AddWorker(workers, &jobs.NotificationEmailWorker{
			Users:  repo.Users(),
			Sender: emailService,
			Logger: logger,
		})
		river.AddWorker(workers, &jobs.ApprovalSLAWorker{
			Counter: postgres.NewStatsRepository(pool),
			SLA:     cfg.Jobs.ApprovalSLA,
			Logger:  logger,
		})

		riverClient, err = jobs.NewClient(pool, workers, slog.New(slog.NewJSONHandler(os.Stdout, nil)), jobs.NewPeriodicJobs())
		if err != nil {
			return fmt.Errorf("river client init: %w", err)
		}
		dispatcher = notify.NewDispatcher(repo.Notifications(), &jobs.EmailEnqueuer{Client: riverClient}, logger)
	} else {
		logger.Warn().Msg("background jobs disabled; notification emails will not be sent")
		dispatcher = notify.NewDispatcher(repo.Notifications(), nil, logger)
	}

	auditor := audit.NewRecorder(repo.Audit(), logger)

	companyService := companies.NewService(repo.Companies())
	opportunityService := opportunities.NewService(repo.Opportunities(), repo.Companies())
	graduationService := graduation.NewService(repo.Graduation())
	interestService := interests.NewService(repo.Interests(), repo.Opportunities(), repo.Companies(), dispatcher, logger)
	moderationService := moderation.NewService(moderation.Params{
		Companies:     repo.Companies(),
		Opportunities: repo.Opportunities(),
		Graduation:    repo.Graduation(),
		Users:         repo.Users(),
		Auditor:       auditor,
		Notifier:      dispatcher,
		SLA:           cfg.Jobs.ApprovalSLA,
		Logger:        logger,
	})

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	handler := api.NewRouter(api.Deps{
		Config:        cfg,
		Logger:        logger,
		Pool:          pool,
		JWT:           jwtManager,
		Companies:     companyService,
		Opportunities: opportunityService,
		Graduation:    graduationService,
		Interests:     interestService,
		Moderation:    moderationService,
	})

	if riverClient != nil {
		riverCtx, riverCancel := context.WithCancel(context.Background())
		defer riverCancel()
		if err := riverClient.Start(riverCtx); err != nil {
			return fmt.Errorf("river workers failed to start: %w", err)
		}
		logger.Info().Msg("river background job workers started")
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := riverClient.Stop(stopCtx); err != nil {
				logger.Error().Err(err).Msg("river workers shutdown error")
			}
		}()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
