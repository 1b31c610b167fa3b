// Package scene provides the hierarchical object graph that auto-references are
// resolved against.
//
// A Scene owns an ordered list of root nodes. Every Node has at most one parent,
// an ordered list of children and an ordered list of components. Components are
// user-defined structs that embed Base, which binds them to their owning node and
// gives them a stable identifier.
//
// # Components
//
//	type Player struct {
//	    scene.Base
//	    Body *Rigidbody `autoref:"own"`
//	}
//
//	root := scene.NewNode("Player")
//	root.AddComponent(&Player{})
//
// # Registry
//
// The Registry maps persisted type names to Go types so that scene documents can
// be decoded back into concrete components. Types are registered once at startup:
//
//	scene.MustRegister(scene.DefaultRegistry, "game.Player", &Player{})
//
// # Documents
//
// Scenes are persisted as YAML documents (see Document). Plain fields are encoded
// natively, component references as {ref: <component id>} and external assets as
// {asset: <path>}.
package scene
