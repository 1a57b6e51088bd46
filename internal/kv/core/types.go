// Package core defines the prefix-addressable key-value medium used by the
// remote key-value adapter.
package core

import (
	"context"
	"errors"
	"time"
)

// Driver identifies a concrete key-value backend implementation.
type Driver string

const (
	// DriverFilesystem stores one file per key under a root directory.
	DriverFilesystem Driver = "fs" // local filesystem (default, dev)
	// DriverS3 stores one object per key in an S3 / MinIO bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps entries in process memory (tests).
	DriverMemory Driver = "memory"
)

// Entry is one stored value.
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a prefix-addressable key-value store. Writes are per key; there
// is no multi-key atomicity.
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	// GetByPrefix returns every entry whose key starts with prefix, ordered by key.
	GetByPrefix(ctx context.Context, prefix string) ([]Entry, error)
	Driver() Driver
}

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("kv: key not found")
