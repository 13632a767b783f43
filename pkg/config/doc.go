// Package config loads environment-driven configuration structs for the
// toolkit's components.
//
// Configuration is declared as plain structs with `env` tags and parsed with
// Load; .env files can be layered in first with LoadEnv:
//
//	if err := config.LoadEnv(".env", ".env.local"); err != nil {
//		return err
//	}
//
//	var cfg workerpool.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches parsed values per struct type, so independent packages loading
// the same config type observe one consistent snapshot.
package config
