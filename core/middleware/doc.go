// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a unique request id stored in the context locals and echoed in the
//     X-Ray-ID response header for tracing.
//
// Register rayid first so every later log line carries the id.
package middleware
