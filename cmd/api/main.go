package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/config"
	"github.com/justsurfingit/jobportal/internal/database"
	"github.com/justsurfingit/jobportal/internal/handlers"
	"github.com/justsurfingit/jobportal/internal/logging"
	"github.com/justsurfingit/jobportal/internal/metrics"
	"github.com/justsurfingit/jobportal/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
		return 1
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	clock := clockwork.NewRealClock()
	ctx := context.Background()

	// 2. Store
	var (
		jobStore services.JobStore
		appStore services.ApplicationStore
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		jobStore = database.NewMemoryJobStore(cfg.AtomicApplicationCount)
		appStore = database.NewMemoryApplicationStore()
	default:
		db, err := database.Connect(ctx, cfg.DSN(), log)
		if err != nil {
			log.WithError(err).Error("Failed to connect to database")
			return 1
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.WithError(err).Error("Failed to close database")
			}
		}()
		jobStore = database.NewJobStore(db, cfg.AtomicApplicationCount)
		appStore = database.NewApplicationStore(db)
	}

	// 3. Session revocation (optional)
	var denylist auth.Denylist
	if cfg.RedisURL != "" {
		rdb, err := auth.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Error("Failed to connect to Redis")
			return 1
		}
		defer rdb.Close()
		denylist = auth.NewRedisDenylist(rdb)
		log.Info("Token revocation enabled")
	} else {
		log.Info("REDIS_URL not set; logout only clears the cookie")
	}

	// 4. Initialize Core Services (Dependencies)
	m := metrics.New()
	tokens := auth.NewTokenService(cfg.AccessJWTSecret, cfg.TokenTTL, clock, denylist)
	jobService := services.NewJobService(jobStore, log)
	appService := services.NewApplicationService(appStore, jobService, log, m)

	// 5. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Jobs:           jobService,
		Applications:   appService,
		Tokens:         tokens,
		Metrics:        m,
		Log:            log,
		Clock:          clock,
		AllowedOrigins: cfg.AllowedOrigins(),
		TrustedProxies: cfg.TrustedProxyList(),
		CookieSecure:   cfg.CookieSecure,
		RequestTimeout: cfg.RequestTimeout,
		JWTRateLimit:   cfg.JWTRateLimit,
		JWTRateBurst:   cfg.JWTRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Serve until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.WithField("port", cfg.Port).Info("Job Portal server starting")
	if err := serve(srv, quit, log); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return 1
	}
	log.Info("Server stopped")
	return 0
}

// serve runs srv until it fails or quit fires, then shuts it down. Errors are
// returned rather than fatal so the caller's deferred closes still run.
func serve(srv *http.Server, quit <-chan os.Signal, log logrus.FieldLogger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
