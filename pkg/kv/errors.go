package kv

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key
	ErrKeyNotFound = errors.New("kv.key_not_found")

	// ErrEmptyKey indicates an empty key was passed to a store operation
	ErrEmptyKey = errors.New("kv.empty_key")

	// ErrStoreClosed indicates an operation on a closed store
	ErrStoreClosed = errors.New("kv.store_closed")

	// ErrFileWrite indicates the backing file could not be written
	ErrFileWrite = errors.New("kv.file_write_failed")
)
