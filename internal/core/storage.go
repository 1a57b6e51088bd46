package core

import (
	"context"
	"fmt"

	"jamaah/internal/config"
	"jamaah/internal/infra/persistence/kvstore"
	"jamaah/internal/infra/persistence/local"
	"jamaah/internal/infra/persistence/relational"
	"jamaah/internal/kv"
	"jamaah/pkg/domain"
)

// OpenStore opens the backend selected by cfg.Driver (default local). logger
// may be nil.
func OpenStore(ctx context.Context, cfg config.Storage, logger Logger) (domain.Store, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	policy := cfg.MemberNamePolicy()
	driver := cfg.Driver
	if driver == "" {
		driver = domain.DriverLocal
	}
	switch driver {
	case domain.DriverLocal:
		return local.Open(ctx, cfg.Local.Path, local.Options{
			Namespace:   cfg.Local.Namespace,
			ReadLatency: cfg.Local.ReadLatency,
			MemberNames: policy,
			Logger:      logger,
		})
	case domain.DriverKV:
		medium, err := kv.Open(ctx, cfg.KV)
		if err != nil {
			return nil, fmt.Errorf("open kv medium: %w", err)
		}
		return kvstore.New(medium, kvstore.Options{MemberNames: policy, Logger: logger}), nil
	case domain.DriverRelational:
		dialect, err := relational.DialectByName(cfg.SQL.Dialect)
		if err != nil {
			return nil, err
		}
		return relational.Open(ctx, cfg.SQL.DSN, dialect, relational.Options{MemberNames: policy, Logger: logger})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
