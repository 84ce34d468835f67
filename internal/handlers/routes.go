package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/metrics"
	"github.com/justsurfingit/jobportal/internal/middleware"
	"github.com/justsurfingit/jobportal/internal/services"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Tokens       *auth.TokenService
	Metrics      *metrics.Metrics
	Log          logrus.FieldLogger
	Clock        clockwork.Clock

	AllowedOrigins []string
	TrustedProxies []string
	CookieSecure   bool
	RequestTimeout time.Duration
	JWTRateLimit   float64
	JWTRateBurst   int
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	// Forwarding headers are only honoured from configured proxies; with none,
	// ClientIP is the TCP peer.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		cfg.Log.WithError(err).Warn("Invalid trusted proxies, ignoring forwarding headers")
		_ = r.SetTrustedProxies(nil)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	r.Use(
		middleware.Recovery(cfg.Log),
		middleware.RequestLogger(cfg.Log),
		cors.New(corsConfig),
		cfg.Metrics.Middleware(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	guard := auth.NewGuard(cfg.Tokens, cfg.Log)
	limiter := middleware.NewIPRateLimiter(cfg.JWTRateLimit, cfg.JWTRateBurst, cfg.Clock)

	authHandler := NewAuthHandler(cfg.Tokens, cfg.CookieSecure, cfg.Metrics, cfg.Log)
	jobHandler := NewJobHandler(cfg.Jobs, cfg.Log)
	appHandler := NewApplicationHandler(cfg.Applications, cfg.Log)

	r.GET("/", Root)
	r.GET("/health", HealthCheck(cfg.Jobs, cfg.Log))
	r.GET("/metrics", cfg.Metrics.Handler())

	// Session
	r.POST("/jwt", limiter.Middleware(), authHandler.IssueToken)
	r.POST("/logout", authHandler.Logout)

	jobs := r.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.POST("", jobHandler.CreateJob)
	}

	apps := r.Group("/jobApplications")
	{
		apps.GET("", guard.Authenticate(), appHandler.ListMine)
		apps.GET("/jobs/:job_id", appHandler.ListForJob)
		apps.POST("", appHandler.Create)
		apps.PATCH("/:id", appHandler.UpdateStatus)
		apps.DELETE("/:id", appHandler.Delete)
	}

	return r
}
