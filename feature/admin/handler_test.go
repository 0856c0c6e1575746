package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"extension-host/core/surface"
	"extension-host/extension"
	"extension-host/manifest"
)

const greeterManifest = `{
	"id": "greeter",
	"name": "Greeter",
	"description": "Says hello",
	"commands": [
		{"name": "hello", "description": "Greets", "reply": "Hello {{.name}}!"}
	]
}`

type adminFixture struct {
	app      *fiber.App
	registry *extension.Registry
	ctrl     *extension.Controller
	dir      string
	stopped  *bool
}

func setupAdmin(t *testing.T) *adminFixture {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeter.json"), []byte(greeterManifest), 0o644))

	log := zap.NewNop()
	registry := extension.NewRegistry()
	scanner := extension.NewDirScanner(dir, ".json")
	mux := surface.NewMux(log)
	ctrl := extension.NewController(registry, manifest.NewFactory(log), mux, scanner, extension.NewPolicy(nil, nil), log)
	bridge := extension.NewBridge(ctrl, registry)

	stopped := false
	service := NewService(bridge, registry, nil, log, "test", func() { stopped = true })

	app := fiber.New()
	NewHandler(service).RegisterRoutes(app)

	return &adminFixture{app: app, registry: registry, ctrl: ctrl, dir: dir, stopped: &stopped}
}

func (f *adminFixture) request(t *testing.T, method, target string) *http.Response {
	t.Helper()
	resp, err := f.app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHandlePing(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodGet, "/admin/ping")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "pong", body["status"])
}

func TestHandleLoadAndList(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodPost, "/admin/extensions/greeter/load")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/admin/extensions")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Extensions []ExtensionStatus `json:"extensions"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Extensions, 1)
	assert.Equal(t, "greeter", body.Extensions[0].ID)
	assert.True(t, body.Extensions[0].Loaded)
	assert.Equal(t, "Greeter", body.Extensions[0].Name)
}

func TestHandleLoad_UnknownID(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodPost, "/admin/extensions/ghost/load")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not_found", body["kind"])
}

func TestHandleUnload(t *testing.T) {
	f := setupAdmin(t)
	require.True(t, f.ctrl.Load(context.Background(), "greeter").OK())

	resp := f.request(t, http.MethodPost, "/admin/extensions/greeter/unload")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry, ok := f.registry.Get("greeter")
	require.True(t, ok)
	assert.Equal(t, extension.StateUnloaded, entry.State)
}

func TestHandleUnload_UnknownID(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodPost, "/admin/extensions/ghost/unload")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleReloadOne(t *testing.T) {
	f := setupAdmin(t)
	require.True(t, f.ctrl.Load(context.Background(), "greeter").OK())

	resp := f.request(t, http.MethodPost, "/admin/extensions/greeter/reload")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, true, body["success"])

	entry, ok := f.registry.Get("greeter")
	require.True(t, ok)
	assert.Equal(t, extension.StateLoaded, entry.State)
}

func TestHandleReloadAll(t *testing.T) {
	f := setupAdmin(t)
	require.True(t, f.ctrl.Load(context.Background(), "greeter").OK())

	resp := f.request(t, http.MethodPost, "/admin/extensions/reload")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	decode(t, resp, &body)
	assert.Equal(t, 1, body["succeeded"])
	assert.Equal(t, 0, body["failed"])
}

func TestHandleEvents_JournalDisabled(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodGet, "/admin/events")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleStats(t *testing.T) {
	f := setupAdmin(t)
	require.True(t, f.ctrl.Load(context.Background(), "greeter").OK())

	resp := f.request(t, http.MethodGet, "/admin/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatsReport
	decode(t, resp, &body)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, 1, body.Known)
	assert.Equal(t, 1, body.Loaded)
	assert.NotEmpty(t, body.GoVersion)
}

func TestHandleShutdown(t *testing.T) {
	f := setupAdmin(t)

	resp := f.request(t, http.MethodPost, "/admin/shutdown")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, *f.stopped)
}
