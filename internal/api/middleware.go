package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"go.uber.org/zap"
)

// requestIDMiddleware reuses the caller's X-Request-ID or generates one and
// puts it into the request context for the logger.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Response().Header().Set(constants.HeaderRequestID, id)
		ctx.Set(constants.CtxKeyRequestID, id)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), zap.String(constants.CtxKeyRequestID, id))))

		return next(ctx)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			logger.Info(ctx.Request().Context(), "request", fields...)
			return nil
		},
	})
}
