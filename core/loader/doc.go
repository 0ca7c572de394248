// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements the Feature interface, which names the feature, says whether
// it is enabled and registers its routes.
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
// The Manager keeps features in registration order:
//   - Register() adds a feature
//   - LoadAll() loads the enabled ones and stops at the first failure
package loader
