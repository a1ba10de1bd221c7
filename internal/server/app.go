// Package server initializes and runs the auth service: it wires the
// database, migrations, token issuer, mail dispatcher, and the HTTP
// server, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/forwardtrading/authsvc/internal/logging"
	"github.com/forwardtrading/authsvc/internal/server/auth"
	"github.com/forwardtrading/authsvc/internal/server/config"
	"github.com/forwardtrading/authsvc/internal/server/httpapi"
	"github.com/forwardtrading/authsvc/internal/server/mail"
	"github.com/forwardtrading/authsvc/internal/server/repositories/repomanager"
	"github.com/forwardtrading/authsvc/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	dispatcher *mail.QueueDispatcher
	handler    http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewZerologLogger(zerolog.New(os.Stdout).With().Timestamp().Logger())

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey),
		cfg.SessionTokenTTL, cfg.VerificationTokenTTL, cfg.ResetTokenTTL)

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, cfg.Domain)
	dispatcher := mail.NewQueueDispatcher(mailer, logger, cfg.MailQueueSize)

	svc := services.NewAuthService(db, m, issuer, dispatcher, logger, cfg)
	handler := httpapi.NewRouter(httpapi.NewHandler(svc, logger, issuer.SessionTTL()), logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		dispatcher: dispatcher,
		handler:    handler,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	// Stop accepting mail and drain what is already queued.
	app.dispatcher.Close()

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	return nil
}
