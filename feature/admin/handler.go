package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"extension-host/core/logger"
	"extension-host/extension"
)

// Handler handles HTTP requests for extension administration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin")
	group.Get("/ping", h.HandlePing)
	group.Get("/stats", h.HandleStats)
	group.Get("/extensions", h.HandleList)
	group.Post("/extensions/reload", h.HandleReloadAll)
	group.Post("/extensions/:id/reload", h.HandleReloadOne)
	group.Post("/extensions/:id/load", h.HandleLoadOne)
	group.Post("/extensions/:id/unload", h.HandleUnloadOne)
	group.Get("/events", h.HandleEvents)
	group.Post("/shutdown", h.HandleShutdown)
}

// HandlePing answers with a timestamp echo for latency checks.
func (h *Handler) HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "pong"})
}

// HandleStats reports process vitals and extension counts.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleList reports every known extension with its lifecycle state.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"extensions": h.service.List()})
}

// HandleReloadAll reloads every known extension and reports counts.
func (h *Handler) HandleReloadAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Operator requested reload of all extensions")

	succeeded, failed := h.service.ReloadAll(c.Context())
	return c.JSON(fiber.Map{"succeeded": succeeded, "failed": failed})
}

// HandleReloadOne reloads a single extension.
func (h *Handler) HandleReloadOne(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")
	l.Info("Operator requested reload", zap.String("extension", id))

	return writeResult(c, h.service.ReloadOne(c.Context(), id))
}

// HandleLoadOne loads a single extension.
func (h *Handler) HandleLoadOne(c *fiber.Ctx) error {
	return writeResult(c, h.service.LoadOne(c.Context(), c.Params("id")))
}

// HandleUnloadOne unloads a single extension.
func (h *Handler) HandleUnloadOne(c *fiber.Ctx) error {
	return writeResult(c, h.service.UnloadOne(c.Context(), c.Params("id")))
}

// HandleEvents returns recent lifecycle journal entries, optionally filtered
// by ?extension=<id>.
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	if !h.service.HasJournal() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "lifecycle journal is disabled",
		})
	}
	events, err := h.service.Events(c.Context(), c.Query("extension"), c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"events": events})
}

// HandleShutdown requests a graceful host stop.
func (h *Handler) HandleShutdown(c *fiber.Ctx) error {
	h.service.Shutdown()
	return c.JSON(fiber.Map{"status": "shutting down"})
}

// writeResult maps a lifecycle Result onto an HTTP response: structured
// success/error detail, 404 for unknown ids.
func writeResult(c *fiber.Ctx, r extension.Result) error {
	if r.OK() {
		return c.JSON(fiber.Map{"extension": r.ID, "success": true, "skipped": r.Skipped})
	}
	status := fiber.StatusInternalServerError
	if r.Err.Kind == extension.KindNotFound {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"extension": r.ID,
		"success":   false,
		"kind":      string(r.Err.Kind),
		"error":     r.Err.Error(),
	})
}
