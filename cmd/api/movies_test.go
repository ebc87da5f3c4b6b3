package main

import (
	"context"
	"net/http"
	"testing"

	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieBody(genreID string) map[string]any {
	return map[string]any{
		"title":           "Terminator",
		"genreId":         genreID,
		"numberInStock":   5,
		"dailyRentalRate": 2.5,
	}
}

func (ts *testServer) insertMovie(t *testing.T, genre *data.Genre) *data.Movie {
	t.Helper()

	movie := &data.Movie{Title: "Terminator", Genre: *genre, NumberInStock: 5, DailyRentalRate: 2.5}
	require.NoError(t, ts.app.models.Movies.Insert(context.Background(), movie))
	return movie
}

func (ts *testServer) countMovies(t *testing.T) int {
	t.Helper()

	movies, err := ts.app.models.Movies.GetAll(context.Background())
	require.NoError(t, err)
	return len(movies)
}

func TestCreateMovie(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")

	rec := ts.do(t, http.MethodPost, "/api/movies", "", movieBody(genre.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	movie := decodeJSON[data.Movie](t, rec)
	assert.False(t, movie.ID.IsZero())
	assert.Equal(t, "Terminator", movie.Title)
	assert.Equal(t, *genre, movie.Genre)
	assert.Equal(t, 5, movie.NumberInStock)
	assert.Equal(t, 2.5, movie.DailyRentalRate)

	stored, err := ts.app.models.Movies.Get(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie, *stored)
}

func TestCreateMovieValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/movies", "", map[string]any{"title": "Term", "numberInStock": 300})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	details := decodeJSON[[]validator.FieldError](t, rec)
	require.Len(t, details, 4)
	assert.Equal(t, []string{"title"}, details[0].Path)
	assert.Equal(t, "string.min", details[0].Type)
	assert.Equal(t, []string{"genreId"}, details[1].Path)
	assert.Equal(t, "number.max", details[2].Type)
	assert.Equal(t, `"dailyRentalRate" is required`, details[3].Message)

	rec = ts.do(t, http.MethodPost, "/api/movies", "", map[string]any{"title": 42})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	details = decodeJSON[[]validator.FieldError](t, rec)
	require.Len(t, details, 4)
	assert.Equal(t, validator.FieldError{Message: `"title" must be a string`, Path: []string{"title"}, Type: "string.base"}, details[0])
	assert.Equal(t, `"numberInStock" is required`, details[2].Message)

	assert.Zero(t, ts.countMovies(t))
}

func TestCreateMovieNumberConversion(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")

	body := movieBody(genre.ID.Hex())
	body["numberInStock"] = "5"
	body["dailyRentalRate"] = "2.5"

	rec := ts.do(t, http.MethodPost, "/api/movies", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	movie := decodeJSON[data.Movie](t, rec)
	assert.Equal(t, 5, movie.NumberInStock)
	assert.Equal(t, 2.5, movie.DailyRentalRate)

	tests := []struct {
		name  string
		value any
		want  validator.FieldError
	}{
		{"word", "five", validator.FieldError{Message: `"numberInStock" must be a number`, Path: []string{"numberInStock"}, Type: "number.base"}},
		{"bool", true, validator.FieldError{Message: `"numberInStock" must be a number`, Path: []string{"numberInStock"}, Type: "number.base"}},
		{"fraction", 2.5, validator.FieldError{Message: `"numberInStock" must be an integer`, Path: []string{"numberInStock"}, Type: "number.integer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := movieBody(genre.ID.Hex())
			body["numberInStock"] = tt.value

			rec := ts.do(t, http.MethodPost, "/api/movies", "", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []validator.FieldError{tt.want}, decodeJSON[[]validator.FieldError](t, rec))
		})
	}

	assert.Equal(t, 1, ts.countMovies(t))
}

func TestCreateMovieInvalidGenre(t *testing.T) {
	ts := newTestServer(t)
	ts.insertGenre(t, "Action")

	rec := ts.do(t, http.MethodPost, "/api/movies", "", movieBody(docstore.NewID().Hex()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid genre", rec.Body.String())

	assert.Zero(t, ts.countMovies(t))
}

func TestListMovies(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")

	rec := ts.do(t, http.MethodGet, "/api/movies", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ts.insertMovie(t, genre)
	ts.insertMovie(t, genre)

	rec = ts.do(t, http.MethodGet, "/api/movies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]data.Movie](t, rec), 2)
}

func TestShowMovie(t *testing.T) {
	ts := newTestServer(t)
	movie := ts.insertMovie(t, ts.insertGenre(t, "Action"))

	rec := ts.do(t, http.MethodGet, "/api/movies/"+movie.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, *movie, decodeJSON[data.Movie](t, rec))

	rec = ts.do(t, http.MethodGet, "/api/movies/"+docstore.NewID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, movieNotFound, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/movies/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMovieChangesOnlyName(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")
	other := ts.insertGenre(t, "Comedy")
	movie := ts.insertMovie(t, genre)

	body := map[string]any{
		"title":           "Something Else",
		"genreId":         other.ID.Hex(),
		"numberInStock":   100,
		"dailyRentalRate": 9,
		"name":            "Terminator 1984",
	}

	rec := ts.do(t, http.MethodPut, "/api/movies/"+movie.ID.Hex(), "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want := *movie
	want.Name = "Terminator 1984"
	assert.Equal(t, want, decodeJSON[data.Movie](t, rec))

	stored, err := ts.app.models.Movies.Get(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, want, *stored)
}

func TestUpdateMovieErrors(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")
	movie := ts.insertMovie(t, genre)

	rec := ts.do(t, http.MethodPut, "/api/movies/"+movie.ID.Hex(), "", map[string]any{"title": "Term"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"title" length must be at least 5 characters long`, rec.Body.String())

	body := movieBody(genre.ID.Hex())
	body["title"] = 42
	rec = ts.do(t, http.MethodPut, "/api/movies/"+movie.ID.Hex(), "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"title" must be a string`, rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/api/movies/"+docstore.NewID().Hex(), "", movieBody(genre.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, movieNotFound, rec.Body.String())
}

func TestDeleteMovie(t *testing.T) {
	ts := newTestServer(t)
	genre := ts.insertGenre(t, "Action")
	movie := ts.insertMovie(t, genre)
	path := "/api/movies/" + movie.ID.Hex()

	rec := ts.do(t, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"title" is required`, rec.Body.String())
	assert.Equal(t, 1, ts.countMovies(t))

	rec = ts.do(t, http.MethodDelete, path, "", movieBody(genre.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, *movie, decodeJSON[data.Movie](t, rec))
	assert.Zero(t, ts.countMovies(t))

	rec = ts.do(t, http.MethodDelete, path, "", movieBody(genre.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
