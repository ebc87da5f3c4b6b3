package main

import (
	"net/http"

	"vidly/internal/data"
	"vidly/internal/validator"

	"github.com/labstack/echo/v4"
)

const genreNotFound = "The genre with the given id could not be found"

func (app *application) listGenresHandler(c echo.Context) error {
	genres, err := app.models.Genres.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}

func (app *application) showGenreHandler(c echo.Context) error {
	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	genre, err := app.models.Genres.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, genreNotFound)
	}
	return c.JSON(http.StatusOK, genre)
}

func (app *application) createGenreHandler(c echo.Context) error {
	var input data.GenreInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateGenre(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	genre := &data.Genre{Name: input.Name}
	if err := app.models.Genres.Insert(c.Request().Context(), genre); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genre)
}

func (app *application) updateGenreHandler(c echo.Context) error {
	var input data.GenreInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateGenre(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	genre, err := app.models.Genres.UpdateName(c.Request().Context(), id, input.Name)
	if err != nil {
		return notFoundOr(err, genreNotFound)
	}
	return c.JSON(http.StatusOK, genre)
}

func (app *application) deleteGenreHandler(c echo.Context) error {
	id, err := app.readIDParam(c)
	if err != nil {
		return err
	}

	genre, err := app.models.Genres.Delete(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, genreNotFound)
	}
	return c.JSON(http.StatusOK, genre)
}
