package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vidly/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const authTokenHeader = "x-auth-token"

func (app *application) CustomRecover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					c.Response().Header().Set("Connection", "close")
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}

func (app *application) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogURI:           true,
		LogError:         true,
		LogMethod:        true,
		LogRequestID:     true,
		LogContentLength: true,
		HandleError:      true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("content_length", v.ContentLength),
			}

			switch {
			case v.Error != nil && v.Status >= http.StatusInternalServerError:
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				app.logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR", attrs...)
			case v.Error != nil:
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				app.logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
			default:
				app.logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
			}
			return nil
		},
	})
}

func (app *application) rateLimiter() echo.MiddlewareFunc {
	limiter := app.config.Limiter

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return limiter.Disabled
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(limiter.RPS), Burst: limiter.Burst, ExpiresIn: 3 * time.Minute},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.String(http.StatusForbidden, "Status forbidden")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests")
		},
	})
}

// Authenticate rejects requests without a valid x-auth-token and stores
// the token's claims on the context for the handlers that follow.
func (app *application) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(authTokenHeader)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
		}

		claims, err := app.tokens.Validate(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
		}

		app.contextSetUser(c, claims)
		return next(c)
	}
}

func (app *application) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	fn := func(c echo.Context) error {
		if !app.contextGetUser(c).IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied.")
		}
		return next(c)
	}
	return app.Authenticate(fn)
}

func (app *application) contextSetUser(c echo.Context, claims *auth.Claims) {
	c.Set("user", claims)
}

func (app *application) contextGetUser(c echo.Context) *auth.Claims {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		panic("missing user value in request context")
	}
	return claims
}
