// Package config loads configuration structs from environment variables.
//
// Parsing is driven by `env` struct tags (github.com/caarlos0/env), with an
// optional .env file loaded once per process for local development
// (github.com/joho/godotenv). Load returns sentinel-wrapped errors checkable
// with errors.Is; MustLoad panics for configuration the process cannot run
// without.
//
//	var cfg feature.Config
//	config.MustLoad(&cfg)
//	evaluator, err := feature.NewFromConfig(cfg)
package config
