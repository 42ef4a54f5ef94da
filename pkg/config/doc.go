// Package config loads typed configuration structs from environment
// variables, with optional .env support for local development.
//
// Each subsystem declares its own Config struct with `env` tags and loads it
// once at startup. Components never read the environment directly; they
// receive parsed configuration from the caller.
package config
