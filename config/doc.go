// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Feed endpoints are declared per family, keyed by feed identifier; secrets
// (the upstream API key) come from the environment, not the file.
package config
