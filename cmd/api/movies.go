package main

import (
	"errors"
	"net/http"

	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/validator"

	"github.com/labstack/echo/v4"
)

const movieNotFound = "The movie with the given id could not be found"

func (app *application) listMoviesHandler(c echo.Context) error {
	movies, err := app.models.Movies.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

func (app *application) showMovieHandler(c echo.Context) error {
	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	movie, err := app.models.Movies.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, movieNotFound)
	}
	return c.JSON(http.StatusOK, movie)
}

// createMovieHandler answers validation failures with every detail, unlike
// the update and delete handlers which only send the first message.
func (app *application) createMovieHandler(c echo.Context) error {
	var input data.MovieInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateMovie(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.Errors)
	}

	genreID, err := docstore.ParseID(input.GenreID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid genre")
	}

	ctx := c.Request().Context()

	genre, err := app.models.Genres.Get(ctx, genreID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoRecordFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid genre")
		default:
			return err
		}
	}

	movie := &data.Movie{
		Title:           input.Title,
		Genre:           data.Genre{ID: genre.ID, Name: genre.Name},
		NumberInStock:   input.NumberInStock.Int(),
		DailyRentalRate: input.DailyRentalRate.Value,
	}

	if err := app.models.Movies.Insert(ctx, movie); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// updateMovieHandler validates the full movie body but only ever changes
// the movie's name.
func (app *application) updateMovieHandler(c echo.Context) error {
	var input data.MovieInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateMovie(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	movie, err := app.models.Movies.UpdateName(c.Request().Context(), id, input.Name)
	if err != nil {
		return notFoundOr(err, movieNotFound)
	}
	return c.JSON(http.StatusOK, movie)
}

func (app *application) deleteMovieHandler(c echo.Context) error {
	var input data.MovieInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateMovie(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	movie, err := app.models.Movies.Delete(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, movieNotFound)
	}
	return c.JSON(http.StatusOK, movie)
}
