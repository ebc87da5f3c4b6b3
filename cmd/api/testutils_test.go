package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"vidly/internal/auth"
	"vidly/internal/config"
	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/docstore/memory"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	recipient string
	template  string
	data      any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{recipient: recipient, template: templateFile, data: data})
	return nil
}

type testServer struct {
	app    *application
	e      *echo.Echo
	mailer *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := auth.NewTokenService("test-jwt-private-key", 0)
	require.NoError(t, err)

	store := memory.New()
	mailer := &fakeMailer{}

	app := &application{
		config: &config.Config{
			Env:     "test",
			Limiter: config.LimiterConfig{Disabled: true},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  store,
		models: data.NewModels(store),
		tokens: tokens,
		mailer: mailer,
	}

	return &testServer{app: app, e: app.routes(), mailer: mailer}
}

// userToken mints a token for a user that does not need to exist.
func (ts *testServer) userToken(t *testing.T, isAdmin bool) string {
	t.Helper()

	token, err := ts.app.tokens.Generate(docstore.NewID().Hex(), isAdmin)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		return ts.doRaw(t, method, path, token, "", nil)
	}

	b, err := json.Marshal(body)
	require.NoError(t, err)
	return ts.doRaw(t, method, path, token, echo.MIMEApplicationJSON, bytes.NewReader(b))
}

// doRaw sends body as is, setting the content type header only when
// contentType is not empty.
func (ts *testServer) doRaw(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(authTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
