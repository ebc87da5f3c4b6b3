package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/validator"

	"github.com/labstack/echo/v4"
)

type envelope map[string]interface{}

var errInvalidID = errors.New("invalid id format")

func (app *application) readIDParam(c echo.Context) (docstore.ID, error) {
	id, err := docstore.ParseID(c.Param("id"))
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, errInvalidID.Error())
	}
	return id, nil
}

// bindJSON decodes a JSON request body into dst. Bodies of any other
// content type are ignored and leave dst empty. A value of the wrong JSON
// type is recorded in v; malformed JSON is a 400.
func (app *application) bindJSON(c echo.Context, dst any, v *validator.Validator) error {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return nil
	}

	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ute):
		v.TypeError(ute)
		return nil
	case errors.As(err, &he):
		return he
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// notFoundOr maps data.ErrNoRecordFound to a 404 carrying message and
// passes any other error through.
func notFoundOr(err error, message string) error {
	switch {
	case errors.Is(err, data.ErrNoRecordFound):
		return echo.NewHTTPError(http.StatusNotFound, message)
	default:
		return err
	}
}

func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error(fmt.Sprint(err))
			}
		}()

		fn()
	}()
}

func (app *application) customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var message interface{}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		message = he.Message
	default:
		status = http.StatusInternalServerError
		message = "Something failed."
	}

	switch m := message.(type) {
	case string:
		err = c.String(status, m)
	default:
		err = c.JSON(status, m)
	}
	if err != nil {
		app.logger.Error("writing error response", slog.String("err", err.Error()))
	}
}
