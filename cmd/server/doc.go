// Package main is the entry point for the design backend server.
//
// The server sits between a frontend and the Gemini API, turning
// reference imagery into design DNA and driving screen generation
// through a registry of tool providers.
//
// The server provides:
//   - REST API for tool discovery and execution
//   - WebSocket streaming of tool lifecycle events
//   - Session state with reference images and extracted DNA
//   - Rate limiting and Prometheus metrics
//
// Configuration comes from environment variables (12-factor); see the
// config package for the full list. GEMINI_API_KEY is required.
//
// Usage:
//
//	GEMINI_API_KEY=... ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
