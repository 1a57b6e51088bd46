// Package kvstore implements the remote key-value adapter: every record is
// stored individually under `<kind>:<id>`.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"jamaah/internal/infra/persistence/records"
	"jamaah/internal/kv"
	"jamaah/pkg/domain"
)

// Options tune a Store. The zero value is usable.
type Options struct {
	MemberNames domain.MemberNamePolicy
	Clock       domain.Clock
	Logger      records.Logger
	// CloseFn runs on Close, e.g. to release the medium.
	CloseFn func() error
}

// Store is the remote key-value adapter. Writes to distinct ids never
// conflict; there is no multi-key atomicity.
type Store struct {
	kv      kv.Store
	clock   domain.Clock
	ids     *domain.IDGenerator
	logger  records.Logger
	closeFn func() error

	members     *collection[domain.Member, *domain.Member]
	contents    *collection[domain.Content, *domain.Content]
	masjidPosts *collection[domain.MasjidPost, *domain.MasjidPost]
	schedules   *collection[domain.Schedule, *domain.Schedule]
	articles    *collection[domain.Article, *domain.Article]
	donations   *collection[domain.Donation, *domain.Donation]
}

var _ domain.Store = (*Store)(nil)

// New wraps a key-value medium.
func New(medium kv.Store, opts Options) *Store {
	if opts.MemberNames == "" {
		opts.MemberNames = domain.MemberNamesDenormalized
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.SystemClock
	}
	s := &Store{
		kv:      medium,
		clock:   clock,
		ids:     domain.NewIDGenerator(clock),
		logger:  records.LoggerOrNop(opts.Logger),
		closeFn: opts.CloseFn,
	}
	s.members = newCollection[domain.Member](s, domain.KindMember, records.Hooks[domain.Member]{})
	s.contents = newCollection[domain.Content](s, domain.KindContent, records.MemberNames(opts.MemberNames, s.memberNames))
	s.masjidPosts = newCollection[domain.MasjidPost](s, domain.KindMasjidPost, records.Hooks[domain.MasjidPost]{})
	s.schedules = newCollection[domain.Schedule](s, domain.KindSchedule, records.Hooks[domain.Schedule]{})
	s.articles = newCollection[domain.Article](s, domain.KindArticle, records.Hooks[domain.Article]{})
	s.donations = newCollection[domain.Donation](s, domain.KindDonation, records.Hooks[domain.Donation]{})
	return s
}

func (s *Store) Driver() domain.Driver                             { return domain.DriverKV }
func (s *Store) Members() domain.Collection[domain.Member]         { return s.members }
func (s *Store) Contents() domain.Collection[domain.Content]       { return s.contents }
func (s *Store) MasjidPosts() domain.Collection[domain.MasjidPost] { return s.masjidPosts }
func (s *Store) Schedules() domain.Collection[domain.Schedule]     { return s.schedules }
func (s *Store) Articles() domain.Collection[domain.Article]       { return s.articles }
func (s *Store) Donations() domain.Collection[domain.Donation]     { return s.donations }

// Medium exposes the underlying key-value store.
func (s *Store) Medium() kv.Store { return s.kv }

// Close runs the configured close hook.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// seededKey marks a medium as seeded. It sits outside every kind prefix.
const seededKey = "seed:initialized"

// NeedsSeed reports whether the kind should receive the seed dataset: the
// medium has never been marked seeded and the kind has no keys yet.
func (s *Store) NeedsSeed(ctx context.Context, kind domain.Kind) (bool, error) {
	_, err := s.kv.Get(ctx, seededKey)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, kv.ErrKeyNotFound):
		return false, domain.StorageFailure("seed check", kind, err)
	}
	entries, err := s.kv.GetByPrefix(ctx, kind.KeyPrefix())
	if err != nil {
		return false, domain.StorageFailure("seed check", kind, err)
	}
	return len(entries) == 0, nil
}

// MarkSeeded persists the seeded marker so emptied kinds stay empty.
func (s *Store) MarkSeeded(ctx context.Context) error {
	if err := s.kv.Set(ctx, seededKey, []byte("true")); err != nil {
		return domain.StorageFailure("mark seeded", "", err)
	}
	return nil
}

func (s *Store) memberNames(ctx context.Context) (map[string]string, error) {
	members, err := s.members.all(ctx)
	if err != nil {
		return nil, err
	}
	return records.NameIndex(members), nil
}

type collection[T any, P domain.Record[T]] struct {
	s     *Store
	kind  domain.Kind
	hooks records.Hooks[T]
}

func newCollection[T any, P domain.Record[T]](s *Store, kind domain.Kind, hooks records.Hooks[T]) *collection[T, P] {
	return &collection[T, P]{s: s, kind: kind, hooks: hooks}
}

func (c *collection[T, P]) key(id string) string { return c.kind.KeyPrefix() + id }

func (c *collection[T, P]) all(ctx context.Context) ([]T, error) {
	entries, err := c.s.kv.GetByPrefix(ctx, c.kind.KeyPrefix())
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(entries))
	for _, e := range entries {
		var rec T
		if err := records.Decode(e.Value, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Key, err)
		}
		items = append(items, rec)
	}
	return items, nil
}

func (c *collection[T, P]) load(ctx context.Context, id string) (T, error) {
	var rec T
	data, err := c.s.kv.Get(ctx, c.key(id))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return rec, domain.ErrNotFound{Kind: c.kind, ID: id}
	}
	if err != nil {
		return rec, err
	}
	if err := records.Decode(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (c *collection[T, P]) put(ctx context.Context, rec *T) error {
	data, err := records.Encode(rec)
	if err != nil {
		return err
	}
	return c.s.kv.Set(ctx, c.key(P(rec).Meta().ID), data)
}

func (c *collection[T, P]) present(ctx context.Context, rec T) (T, error) {
	out := []T{rec}
	if err := c.hooks.Read(ctx, out); err != nil {
		var zero T
		return zero, domain.StorageFailure("read", c.kind, err)
	}
	return out[0], nil
}

// List fetches every key under the kind prefix and sorts client-side.
func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, domain.StorageFailure("list", c.kind, err)
	}
	if err := c.hooks.Read(ctx, items); err != nil {
		return nil, domain.StorageFailure("list", c.kind, err)
	}
	domain.Sort[T, P](items)
	return items, nil
}

func (c *collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	rec, err := c.load(ctx, id)
	if err != nil {
		var zero T
		return zero, domain.StorageFailure("get", c.kind, err)
	}
	return c.present(ctx, rec)
}

func (c *collection[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	records.Stamp[T, P](&rec, c.s.ids, c.s.clock)
	if err := c.hooks.Write(ctx, &rec); err != nil {
		return zero, domain.StorageFailure("create", c.kind, err)
	}
	if err := c.put(ctx, &rec); err != nil {
		return zero, domain.StorageFailure("create", c.kind, err)
	}
	return c.present(ctx, rec)
}

// Update reads, mutates, and overwrites one key. Two writers racing on the
// same id may lose an update; the last write wins.
func (c *collection[T, P]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	current, err := c.load(ctx, id)
	if err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	next, err := records.Mutate[T, P](current, mutate, c.s.clock)
	if err != nil {
		return zero, err
	}
	if err := c.hooks.Write(ctx, &next); err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	if err := c.put(ctx, &next); err != nil {
		return zero, domain.StorageFailure("update", c.kind, err)
	}
	return c.present(ctx, next)
}

func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	_, err := c.s.kv.Delete(ctx, c.key(id))
	return domain.StorageFailure("delete", c.kind, err)
}

func (c *collection[T, P]) Import(ctx context.Context, incoming []T) (int, error) {
	batch := append([]T(nil), incoming...)
	c.hooks.Import(batch)
	inserted := 0
	for i := range batch {
		rec := &batch[i]
		records.Normalize[T, P](rec)
		_, err := c.s.kv.Get(ctx, c.key(P(rec).Meta().ID))
		if err == nil {
			continue
		}
		if !errors.Is(err, kv.ErrKeyNotFound) {
			return inserted, domain.StorageFailure("import", c.kind, err)
		}
		if err := c.put(ctx, rec); err != nil {
			return inserted, domain.StorageFailure("import", c.kind, err)
		}
		inserted++
	}
	return inserted, nil
}
