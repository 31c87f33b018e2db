package redis

import "errors"

var (
	// ErrEmptyConnectionURL indicates no connection URL was configured
	ErrEmptyConnectionURL = errors.New("redis.empty_connection_url")

	// ErrInvalidConnectionURL indicates the connection URL could not be parsed
	ErrInvalidConnectionURL = errors.New("redis.invalid_connection_url")

	// ErrNotReady indicates the server did not become reachable in time
	ErrNotReady = errors.New("redis.not_ready")
)
