// Package config loads client configuration from files, .env files and the
// environment.
//
// It uses Viper for YAML/JSON/TOML files and environment variables and
// godotenv for .env files. Environment variables override file values using
// an upper-cased prefix and underscore-separated paths, so with the prefix
// "billing" the key "http.prefix_url" is read from BILLING_HTTP_PREFIX_URL.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.Load("billing", &cfg, config.WithConfigFile("config.yml"))
package config
