package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/applications"
	"scholarship-intake/internal/services/health"
	"scholarship-intake/internal/shared/config"
	"scholarship-intake/internal/shared/metrics"
	"scholarship-intake/internal/shared/server/middleware"
	"scholarship-intake/internal/shared/server/respond"
)

const (
	rateGroupSubmit  = "SUBMIT"
	rateGroupDefault = "DEFAULT"

	// Reads are allowed this many times the submission rate.
	readRateFactor = 10
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config       config.Config
	Applications *applications.Handler
	Form         *applications.FormHandler
	Health       *health.Service
	RateLimiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps.Config, deps.RateLimiter)),
	)

	if deps.Form != nil {
		deps.Form.RegisterRoutes(r)
	}
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	if deps.Applications != nil {
		deps.Applications.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupSubmit:  {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			rateGroupDefault: {Rate: cfg.RateLimitRPS * readRateFactor, Burst: cfg.RateLimitBurst * readRateFactor},
		},
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      limiter,
	}
}

// rateGroupFor puts the two submission routes in their own, stricter bucket.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/apply", "/api/v1/applications":
		return rateGroupSubmit
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
