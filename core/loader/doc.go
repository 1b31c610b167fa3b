// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names it, reports whether
// it is enabled and mounts its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and loads the enabled ones
// with LoadAll. Features such as 'project' and 'history' are developed and tested
// in isolation and only meet here.
package loader
