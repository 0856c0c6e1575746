// Package loader provides the feature loading system for the HTTP app.
//
// It allows the application to register and initialize features (route
// groups) dynamically. Each feature implements the Feature interface, which
// defines its lifecycle hooks and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// Note this is static wiring of the host's own HTTP surface; the hot-loaded
// extensions managed by the extension package are a separate mechanism.
package loader
