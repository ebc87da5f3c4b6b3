package main

import (
	"errors"
	"net/http"

	"vidly/internal/data"
	"vidly/internal/validator"

	"github.com/labstack/echo/v4"
)

const invalidCredentials = "Invalid email or password."

func (app *application) authenticationTokenHandler(c echo.Context) error {
	var input data.LoginInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateLogin(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	user, err := app.models.Users.GetByEmail(c.Request().Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoRecordFound):
			return echo.NewHTTPError(http.StatusBadRequest, invalidCredentials)
		default:
			return err
		}
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		return err
	}

	if !match {
		return echo.NewHTTPError(http.StatusBadRequest, invalidCredentials)
	}

	token, err := app.tokens.Generate(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, token)
}
