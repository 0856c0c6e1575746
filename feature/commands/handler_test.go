package commands

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"extension-host/core/surface"
	"extension-host/extension"
)

type greeterExt struct{}

func (greeterExt) ID() string          { return "greeter" }
func (greeterExt) DisplayName() string { return "Greeter" }
func (greeterExt) Description() string { return "Says hello" }
func (greeterExt) Emoji() string       { return "👋" }
func (greeterExt) Commands() []extension.Command {
	return []extension.Command{{
		Name:        "hello",
		Description: "Greets the caller",
		Handler: func(_ context.Context, req extension.Request) (extension.Response, error) {
			return extension.Response{Text: "Hello " + req.Args["name"] + "!"}, nil
		},
	}}
}

func setupApp(t *testing.T) (*fiber.App, *surface.Mux) {
	t.Helper()
	mux := surface.NewMux(zap.NewNop())
	require.NoError(t, mux.Register(greeterExt{}))

	app := fiber.New()
	NewHandler(mux, zap.NewNop()).RegisterRoutes(app)
	return app, mux
}

func TestHandleList(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/commands/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Commands []surface.CommandInfo `json:"commands"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Commands, 1)
	assert.Equal(t, "hello", body.Commands[0].Name)
	assert.Equal(t, "greeter", body.Commands[0].Extension)
}

func TestHandleDispatch(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/commands/hello", strings.NewReader(`{"name":"World"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body extension.Response
	decode(t, resp, &body)
	assert.Equal(t, "Hello World!", body.Text)
}

func TestHandleDispatch_NoBody(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/commands/hello", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body extension.Response
	decode(t, resp, &body)
	assert.Equal(t, "Hello !", body.Text)
}

func TestHandleDispatch_UnknownCommand(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/commands/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleDispatch_BadBody(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/commands/hello", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleDispatch_AfterDeregister(t *testing.T) {
	app, mux := setupApp(t)
	require.NoError(t, mux.Deregister("greeter"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/commands/hello", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}
