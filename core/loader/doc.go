// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register features (modules) and load their routes.
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry and loads enabled features in registration order with
// LoadAll. Disabled features are skipped and logged.
package loader
