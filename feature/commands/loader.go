package commands

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"extension-host/core/surface"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the command dispatch feature.
func NewFeature(mux *surface.Mux, log *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(mux, log)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "commands"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
