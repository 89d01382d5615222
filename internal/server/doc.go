// Package server wires and runs the application's HTTP server.
//
// It provides startup, signal handling (SIGINT, SIGTERM, SIGQUIT) and graceful
// shutdown bounded by a timeout.
package server
