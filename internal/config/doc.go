// Package config provides 12-factor configuration for the design backend.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Gemini: vision backend settings (API key, model, timeouts)
//   - Sandbox: component store settings (base URL, timeout)
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - GEMINI_API_KEY, GEMINI_MODEL, GEMINI_EXTRACTION_TIMEOUT, GEMINI_TEXT_TIMEOUT
//   - SANDBOX_URL, SANDBOX_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
