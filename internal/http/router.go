package http

import (
	"github.com/gin-gonic/gin"
	httpH "github.com/yungbote/payona-backend/internal/http/handlers"
	httpMW "github.com/yungbote/payona-backend/internal/http/middleware"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	FingerprintHandler *httpH.FingerprintHandler
	MealRequestHandler *httpH.MealRequestHandler
	MatchHandler       *httpH.MatchHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Fingerprints
	if h := cfg.FingerprintHandler; h != nil {
		protected.POST("/fingerprints", h.Create)
		protected.GET("/fingerprints", h.ListEligible)
		protected.GET("/fingerprints/my", h.ListMine)
		protected.DELETE("/fingerprints/:id", h.Cancel)
	}

	// Meal requests
	if h := cfg.MealRequestHandler; h != nil {
		protected.POST("/meal-requests", h.Create)
		protected.GET("/meal-requests", h.ListEligible)
		protected.GET("/meal-requests/my", h.ListMine)
		protected.DELETE("/meal-requests/:id", h.Cancel)
	}

	// Matches
	if h := cfg.MatchHandler; h != nil {
		protected.POST("/matches", h.Create)
		protected.GET("/matches/my", h.ListMine)
		protected.PUT("/matches/:id/status", h.UpdateStatus)
		protected.GET("/matches/for-request", h.GetByPair)
		protected.POST("/matches/auto-match", h.AutoMatch)
		protected.GET("/matches/activity-stats", h.ActivityStats)
	}

	return r
}
