// Package kv re-exports the key-value abstractions and selects a driver.
package kv

import "jamaah/internal/kv/core"

type (
	// Driver identifies a key-value backend driver.
	Driver = core.Driver
	// Entry is one stored key and value.
	Entry = core.Entry
	// Store is the interface for key-value backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

// ErrKeyNotFound indicates an absent key.
var ErrKeyNotFound = core.ErrKeyNotFound
