// Package providers holds the tool providers of the design backend.
//
// Each subpackage exposes one service through a standardized tool-based
// interface, registered with the service registry and executed by tool
// id ("service.tool").
//
// Available Providers:
//   - Tokens: Design token state, CSS and theme export
//   - DNA: Business DNA extraction from reference imagery
//   - Screens: Screen generation, modification, and variants
//   - Workflow: Multi-screen planning and step execution
//   - Knowledge: Document storage and keyword search
//   - Brand: Website scraping for brand signals
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	p := tokens.NewProvider(sessions)
//	result, err := p.Execute(ctx, "tokens.get", params, appCtx)
package providers
