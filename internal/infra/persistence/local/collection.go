package local

import (
	"context"

	"jamaah/internal/infra/persistence/records"
	"jamaah/pkg/domain"
)

type collection[T any, P domain.Record[T]] struct {
	s     *Store
	kind  domain.Kind
	hooks records.Hooks[T]
}

func newCollection[T any, P domain.Record[T]](s *Store, kind domain.Kind, hooks records.Hooks[T]) *collection[T, P] {
	return &collection[T, P]{s: s, kind: kind, hooks: hooks}
}

func (c *collection[T, P]) bucket() string { return c.s.ns + c.kind.Collection() }

// load reads the raw list. A missing key is an empty list.
func (c *collection[T, P]) load(ctx context.Context) ([]T, error) {
	payload, ok, err := c.s.read(ctx, c.bucket())
	if err != nil || !ok {
		return nil, err
	}
	var items []T
	if err := records.Decode(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *collection[T, P]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := records.Encode(items)
	if err != nil {
		return err
	}
	return c.s.write(ctx, c.bucket(), payload)
}

// List waits out the synthetic latency, then returns the sorted list. An
// unreadable or malformed list degrades to empty.
func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	if err := c.s.delay(ctx); err != nil {
		return nil, err
	}
	items, err := c.load(ctx)
	if err != nil {
		c.s.logger.Warn("local list degraded to empty", "kind", c.kind, "error", err)
		return []T{}, nil
	}
	if err := c.hooks.Read(ctx, items); err != nil {
		return nil, domain.StorageFailure("list", c.kind, err)
	}
	if items == nil {
		items = []T{}
	}
	domain.Sort[T, P](items)
	return items, nil
}

func (c *collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		c.s.logger.Warn("local get degraded to not found", "kind", c.kind, "id", id, "error", err)
		return zero, domain.ErrNotFound{Kind: c.kind, ID: id}
	}
	idx := records.Find[T, P](items, id)
	if idx < 0 {
		return zero, domain.ErrNotFound{Kind: c.kind, ID: id}
	}
	return c.present(ctx, items[idx])
}

func (c *collection[T, P]) present(ctx context.Context, rec T) (T, error) {
	out := []T{rec}
	if err := c.hooks.Read(ctx, out); err != nil {
		var zero T
		return zero, domain.StorageFailure("read", c.kind, err)
	}
	return out[0], nil
}

func (c *collection[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return zero, domain.StorageFailure("create", c.kind, err)
	}
	records.Stamp[T, P](&rec, c.s.ids, c.s.clock)
	if err := c.hooks.Write(ctx, &rec); err != nil {
		return zero, domain.StorageFailure("create", c.kind, err)
	}
	items = append(items, rec)
	if err := c.save(ctx, items); err != nil {
		return zero, domain.StorageFailure("create", c.kind, err)
	}
	return c.present(ctx, rec)
}

func (c *collection[T, P]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	idx := records.Find[T, P](items, id)
	if idx < 0 {
		return zero, domain.ErrNotFound{Kind: c.kind, ID: id}
	}
	next, err := records.Mutate[T, P](items[idx], mutate, c.s.clock)
	if err != nil {
		return zero, err
	}
	if err := c.hooks.Write(ctx, &next); err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	items[idx] = next
	if err := c.save(ctx, items); err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	return c.present(ctx, next)
}

func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return domain.StorageFailure("delete", c.kind, err)
	}
	idx := records.Find[T, P](items, id)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)
	return domain.StorageFailure("delete", c.kind, c.save(ctx, items))
}

func (c *collection[T, P]) Import(ctx context.Context, incoming []T) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return 0, domain.StorageFailure("import", c.kind, err)
	}
	batch := append([]T(nil), incoming...)
	c.hooks.Import(batch)
	inserted := 0
	for i := range batch {
		records.Normalize[T, P](&batch[i])
		if records.Find[T, P](items, P(&batch[i]).Meta().ID) >= 0 {
			continue
		}
		items = append(items, batch[i])
		inserted++
	}
	if inserted == 0 {
		return 0, nil
	}
	if err := c.save(ctx, items); err != nil {
		return 0, domain.StorageFailure("import", c.kind, err)
	}
	return inserted, nil
}
