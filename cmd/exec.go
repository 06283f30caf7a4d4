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

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/redis/go-redis/v9"

	"imagique/config"
	"imagique/internal/form"
	"imagique/internal/handlers"
	"imagique/internal/i18n"
	"imagique/internal/receipt"
	"imagique/internal/services"
	"imagique/internal/services/backend"
	"imagique/internal/session"
	"imagique/monitoring"
	"imagique/utils"
)

// app holds the wired client: one backend, one session, one of each service.
type app struct {
	cfg     *config.Config
	redis   *redis.Client
	monitor *monitoring.Monitor
	client  *backend.Client
	gate    *session.Gate
	tr      *i18n.Translator
	notify  services.Notifier

	eventForm *form.EventForm
	catalog   *services.Catalog
	submitter *services.EventSubmitter
	bookings  *services.BookingService
	revenue   *services.RevenueService
	account   *services.AccountService
	profile   *services.ProfileService
	admin     *services.AdminService
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, tr: i18n.NewTranslator(cfg.Locale)}

	if cfg.RedisURL != "" {
		rc, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			if cfg.SessionBackend == config.SessionBackendRedis {
				return nil, err
			}
			slog.Warn("redis unavailable, running without rate limiting", "error", err)
		} else {
			a.redis = rc
		}
	}

	breaker := utils.NewCircuitBreaker("backend", utils.Settings{
		MaxRequests:  uint32(cfg.BreakerMaxRequests),
		Timeout:      cfg.BreakerTimeout,
		FailureRatio: cfg.BreakerFailureRatio,
	})
	a.monitor = monitoring.NewMonitor(breaker)

	client, err := backend.NewClient(backend.Config{BaseURL: cfg.BackendURL, Timeout: cfg.BackendTimeout}, breaker, a.monitor)
	if err != nil {
		a.close()
		return nil, err
	}
	a.client = client

	var store session.Store
	if cfg.SessionBackend == config.SessionBackendRedis {
		store = session.NewRedisStore(a.redis, cfg.SessionKeyPrefix)
	} else {
		store = session.NewFileStore(cfg.SessionFile)
	}
	a.gate = session.NewGate(store)
	if err := a.gate.Restore(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.notify = services.NewNotifier(services.PubNubConfig{
		PublishKey:   cfg.PubNubPublishKey,
		SubscribeKey: cfg.PubNubSubscribeKey,
		SecretKey:    cfg.PubNubSecretKey,
		UserID:       cfg.PubNubUserID,
	})

	a.eventForm = form.NewEventForm()
	a.catalog = services.NewCatalog(client)
	a.submitter = services.NewEventSubmitter(client, a.eventForm, a.gate, a.monitor)
	a.bookings = services.NewBookingService(client, a.gate, receipt.NewRenderer(cfg.ReceiptQR), a.notify, a.monitor, cfg.ReceiptDir)
	a.revenue = services.NewRevenueService(client)
	a.account = services.NewAccountService(client, a.gate)
	a.profile = services.NewProfileService(client, a.gate)
	a.admin = services.NewAdminService(client)
	return a, nil
}

func (a *app) close() {
	if n, ok := a.notify.(interface{ Wait() }); ok {
		n.Wait()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("closing redis", "error", err)
		}
	}
}

func (a *app) router() *echo.Echo {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	handlers.Register(e, handlers.Deps{
		Gate:    a.gate,
		Session: handlers.NewSessionHandler(a.tr, a.account, a.gate),
		Events:  handlers.NewEventHandler(a.tr, a.catalog, a.submitter, a.eventForm, a.gate),
		Booking: handlers.NewBookingHandler(a.tr, a.bookings, a.revenue, a.gate),
		Profile: handlers.NewProfileHandler(a.tr, a.profile),
		Admin:   handlers.NewAdminHandler(a.tr, a.admin),

		Redis:              a.redis,
		RateLimitPerMinute: a.cfg.RateLimitPerMinute,
		EnableMetrics:      a.cfg.EnableMetrics,
	})
	return e
}

// serve runs the local API until SIGINT or SIGTERM.
func serve(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if cfg.EnableMetrics {
		go a.monitor.Run(ctx)
	}
	go handleShutdown(cancel)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	slog.Info("server exited")
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel, cfg.IsProduction())}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// parseLevel falls back to info in production and debug elsewhere.
func parseLevel(s string, production bool) slog.Level {
	var level slog.Level
	if s != "" && level.UnmarshalText([]byte(s)) == nil {
		return level
	}
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	slog.Info("Shutdown signal received, cleaning up...")
	cancel()
}
