// Package project runs auto-reference batches over a project's scenes.
//
// A project is a scene Repository (a directory or a bucket prefix of YAML scene
// documents), a TOML Manifest naming the build scenes, and a Workspace of scenes
// opened for editing. The Service resolves one of three graph kinds to a list of
// scenes and syncs them as a single engine batch:
//
//   - open: every scene in the workspace; nothing is written back.
//   - persisted: every scene in the repository; modified scenes are saved.
//   - build: the manifest build scenes, in build order; modified scenes are saved.
//
// An open copy always wins over the persisted one. Each finished batch can be
// handed to a Recorder (see feature/history).
//
// # HTTP Endpoints
//
//   - GET /scenes : Lists scenes.
//   - POST /scenes/:name/open : Opens a scene in the workspace.
//   - POST /scenes/:name/close : Closes an open scene.
//   - POST /sync/:kind : Syncs open, persisted or build scenes (supports ?dry_run=true).
//   - POST /sync/scene/:name : Syncs one scene.
//   - GET /sync/cache : Metadata cache state.
//   - DELETE /sync/cache : Clears the metadata cache.
//   - GET /sync/types : Type diagnostics for every registered component.
package project
