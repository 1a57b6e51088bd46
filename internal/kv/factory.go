package kv

import (
	"context"
	"fmt"

	"jamaah/internal/infra/kv/fs"
	"jamaah/internal/infra/kv/memory"
	"jamaah/internal/infra/kv/s3"
)

// Config selects and configures a driver.
type Config struct {
	Driver Driver
	FSRoot string
	S3     s3.Config
}

// Open returns the Store named by cfg.Driver (default fs).
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown kv driver %s", driver)
	}
}
