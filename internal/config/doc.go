// Package config manages application configuration for the LiveJourney API.
//
// Configuration is loaded from environment variables with development
// defaults, then validated as a whole:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - EngineConfig: progression engine knobs (time zone, title threshold)
package config
