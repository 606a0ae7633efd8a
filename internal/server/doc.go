// Package server provides HTTP server setup for the design backend.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, recovery, metrics)
//   - Vision backend and component store clients
//   - Tool provider registration
//   - Session manager and websocket event hub
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Initialize logger (production or development)
//  3. Build the vision backend and component store client
//  4. Register tool providers
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, backend, nil)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
