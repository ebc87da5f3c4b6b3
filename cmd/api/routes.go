package main

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

func (app *application) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = app.customHTTPErrorHandler
	e.Renderer = newTemplateRenderer()

	registry := prometheus.NewRegistry()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(app.requestLogger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "vidly",
		Registerer: registry,
	}))
	e.Use(app.CustomRecover())
	e.Use(app.rateLimiter())
	e.Use(middleware.CORS())

	e.GET("/", app.homeHandler)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))
	e.GET("/api/healthcheck", app.healthcheckHandler)

	genres := e.Group("/api/genres")
	genres.GET("", app.listGenresHandler)
	genres.GET("/:id", app.showGenreHandler)
	genres.POST("", app.createGenreHandler, app.Authenticate)
	genres.PUT("/:id", app.updateGenreHandler, app.Authenticate)
	genres.DELETE("/:id", app.deleteGenreHandler, app.RequireAdmin)

	movies := e.Group("/api/movies")
	movies.GET("", app.listMoviesHandler)
	movies.GET("/:id", app.showMovieHandler)
	movies.POST("", app.createMovieHandler)
	movies.PUT("/:id", app.updateMovieHandler)
	movies.DELETE("/:id", app.deleteMovieHandler)

	users := e.Group("/api/users")
	users.POST("", app.registerUserHandler)
	users.GET("/me", app.showCurrentUserHandler, app.Authenticate)

	e.POST("/api/auth", app.authenticationTokenHandler)

	return e
}
