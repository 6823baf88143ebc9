// Package server holds the HTTP server configuration.
//
// While the serve command handles the server startup, this package defines the
// configuration structure for server settings: listen port, API key, request
// body limit and read timeout.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd to configure the fiber application.
package server
