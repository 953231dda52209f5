// Package httpserver builds the service's HTTP server with defaults tuned
// for a small decision API: fast header reads, bounded idle connections.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for the given handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
