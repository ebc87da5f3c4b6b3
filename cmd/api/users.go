package main

import (
	"errors"
	"log/slog"
	"net/http"

	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/validator"

	"github.com/labstack/echo/v4"
)

func (app *application) registerUserHandler(c echo.Context) error {
	var input data.UserInput
	v := validator.New()
	if err := app.bindJSON(c, &input, v); err != nil {
		return err
	}

	if data.ValidateUser(v, &input); !v.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, v.First())
	}

	ctx := c.Request().Context()

	_, err := app.models.Users.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return echo.NewHTTPError(http.StatusBadRequest, "User already registered.")
	case !errors.Is(err, data.ErrNoRecordFound):
		return err
	}

	user := &data.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := user.Password.Set(input.Password); err != nil {
		return err
	}

	err = app.models.Users.Insert(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			return echo.NewHTTPError(http.StatusBadRequest, "User already registered.")
		default:
			return err
		}
	}

	token, err := app.tokens.Generate(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return err
	}

	if app.mailer != nil {
		app.background(func() {
			data := map[string]any{
				"ID":   user.ID.Hex(),
				"Name": user.Name,
			}
			if err := app.mailer.Send(user.Email, "user_welcome.tmpl", data); err != nil {
				app.logger.Error("sending welcome mail", slog.String("err", err.Error()))
			}
		})
	}

	c.Response().Header().Set(authTokenHeader, token)
	return c.JSON(http.StatusOK, envelope{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (app *application) showCurrentUserHandler(c echo.Context) error {
	claims := app.contextGetUser(c)

	id, err := docstore.ParseID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
	}

	user, err := app.models.Users.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, "The user with the given id could not be found")
	}
	return c.JSON(http.StatusOK, user)
}
