// Package config loads and validates the server's configuration from a
// YAML file and LLCG_-prefixed environment variables, giving the rest
// of the application typed access to the server and database settings.
package config
