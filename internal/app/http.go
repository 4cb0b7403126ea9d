package app

import (
	"github.com/gin-gonic/gin"
	"github.com/yungbote/payona-backend/internal/http"
	httpH "github.com/yungbote/payona-backend/internal/http/handlers"
	httpMW "github.com/yungbote/payona-backend/internal/http/middleware"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Fingerprint *httpH.FingerprintHandler
	MealRequest *httpH.MealRequestHandler
	Match       *httpH.MatchHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(clients.DB),
		Fingerprint: httpH.NewFingerprintHandler(services.Fingerprints),
		MealRequest: httpH.NewMealRequestHandler(services.MealRequests),
		Match:       httpH.NewMatchHandler(services.Matches),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Tokens),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		ServiceName:        serviceName,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthMiddleware:     middleware.Auth,
		FingerprintHandler: handlers.Fingerprint,
		MealRequestHandler: handlers.MealRequest,
		MatchHandler:       handlers.Match,
		HealthHandler:      handlers.Health,
	})
}
