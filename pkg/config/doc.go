// Package config loads configuration structs from environment variables via
// struct tags, with one-shot .env support for local development. Every
// configurable package (api, redis, cmd wiring) declares its own Config
// struct and is populated through Load.
package config
