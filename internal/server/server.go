/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the
route table to the deck handlers.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"swipestack/internal/config"
	"swipestack/internal/database"
	"swipestack/internal/deck"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// db provides access to the database service and connection pool.
	db database.Service

	// deck holds the swipe-deck API handlers.
	deck *deck.Handler
}

// NewServer returns a configured *http.Server with production network
// timeouts and the application's router attached.
func NewServer(cfg *config.Config, db database.Service, h *deck.Handler) *http.Server {
	newApp := &Server{
		port: cfg.Port,
		db:   db,
		deck: h,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(),
		IdleTimeout:  time.Minute,      // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second, // Maximum duration for reading the entire request.
		WriteTimeout: 30 * time.Second, // Maximum duration before timing out writes of the response.
	}
}
