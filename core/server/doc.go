// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application; this package defines the port, the
// optional API key and how long catalog snapshots are cached between requests.
package server
