package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"extension-host/core/journal"
	"extension-host/extension"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the admin feature.
func NewFeature(bridge *extension.Bridge, registry *extension.Registry, events *journal.Store, logger *zap.Logger, version string, shutdown func()) *Feature {
	svc := NewService(bridge, registry, events, logger, version, shutdown)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "admin"
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
