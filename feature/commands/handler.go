package commands

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"extension-host/core/logger"
	"extension-host/core/surface"
	"extension-host/extension"
)

// Handler handles HTTP requests for command dispatch.
type Handler struct {
	mux *surface.Mux
	log *zap.Logger
}

// NewHandler creates a new HTTP handler over the command mux.
func NewHandler(mux *surface.Mux, log *zap.Logger) *Handler {
	return &Handler{mux: mux, log: log}
}

// RegisterRoutes registers the command routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/commands")
	group.Get("/", h.HandleList)
	group.Post("/:name", h.HandleDispatch)
}

// HandleList returns every currently registered command.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"commands": h.mux.Commands()})
}

// HandleDispatch invokes the named command with the JSON body as arguments.
func (h *Handler) HandleDispatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)
	name := c.Params("name")

	args := make(map[string]string)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&args); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "arguments must be a flat JSON object of strings",
			})
		}
	}

	resp, err := h.mux.Dispatch(c.Context(), extension.Request{Command: name, Args: args})
	if err != nil {
		l.Warn("Command dispatch failed", zap.String("command", name), zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, surface.ErrUnknownCommand) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}
