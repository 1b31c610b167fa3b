// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// settings it reads, such as the listen port and the API key checked by the auth
// middleware.
package server
