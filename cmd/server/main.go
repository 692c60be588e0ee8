package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apexbank/internal/config"
	"apexbank/internal/handlers"
	"apexbank/internal/logger"
	"apexbank/internal/mockdata"
	"apexbank/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	sessionCleanupInterval = time.Hour
	shutdownTimeout        = 10 * time.Second
)

func main() {
	configPath := flag.String("config", os.Getenv("APEXBANK_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Log.Development, cfg.LogLevel()); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	opts, err := cfg.DataOptions()
	if err != nil {
		return err
	}
	data := mockdata.Generate(opts)
	log.Info("dataset generated",
		zap.Int("users", len(data.Users)),
		zap.Int("accounts", len(data.Accounts)),
		zap.Int("transactions", len(data.Transactions)),
		zap.Uint64("seed", data.Seed),
		zap.Time("reference", data.GeneratedAt),
	)
	for _, d := range mockdata.CheckTotals(data.Users, data.Accounts, cfg.Data.BalanceTolerance) {
		log.Warn("account balances drift from declared total",
			zap.String("user_id", d.UserID),
			zap.Float64("declared", d.Declared),
			zap.Float64("actual", d.Actual),
		)
	}

	password, err := cfg.Password()
	if err != nil {
		return err
	}

	db, err := storage.NewDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := handlers.NewHandlers(db, data, password, handlers.Options{
		SecureCookie:    cfg.Server.SecureCookie,
		SessionDuration: cfg.Auth.SessionDuration,
	})

	go cleanSessions(ctx, h)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           setupRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupRouter(h *handlers.Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handlers.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	h.Routes(r)

	return r
}

// cleanSessions removes expired cookie sessions, their saved logins and
// their clients until ctx is cancelled.
func cleanSessions(ctx context.Context, h *handlers.Handlers) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		stats, err := h.PruneExpired(ctx)
		if err != nil {
			logger.Get().Warn("failed to clean expired sessions", zap.Error(err))
		} else if stats != (handlers.PruneStats{}) {
			logger.Get().Info("expired sessions removed",
				zap.Int64("sessions", stats.Sessions),
				zap.Int64("logins", stats.Logins),
				zap.Int("clients", stats.Clients),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
