// Package components registers the component and asset types shipped with the
// command line tools.
//
// Importing the package (usually blank, from main) registers every type with
// scene.DefaultRegistry and assets.DefaultTypes so scenes and asset documents
// naming them can be decoded and synced.
package components
