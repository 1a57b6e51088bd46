// Package local implements the local-device adapter: one device-scoped
// namespace on an embedded SQLite file, where every kind is a single key
// holding the whole serialized list.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"jamaah/internal/infra/persistence/records"
	"jamaah/pkg/domain"
)

// DefaultNamespace prefixes every key of the namespace.
const DefaultNamespace = "jamaah_"

// Options tune a Store. The zero value is usable.
type Options struct {
	Namespace   string
	ReadLatency time.Duration
	MemberNames domain.MemberNamePolicy
	Clock       domain.Clock
	Logger      records.Logger
}

// Store is the local-device adapter.
type Store struct {
	db      *sql.DB
	mu      sync.Mutex
	ns      string
	latency time.Duration
	clock   domain.Clock
	ids     *domain.IDGenerator
	logger  records.Logger

	members     *collection[domain.Member, *domain.Member]
	contents    *collection[domain.Content, *domain.Content]
	masjidPosts *collection[domain.MasjidPost, *domain.MasjidPost]
	schedules   *collection[domain.Schedule, *domain.Schedule]
	articles    *collection[domain.Article, *domain.Article]
	donations   *collection[domain.Donation, *domain.Donation]
}

var _ domain.Store = (*Store)(nil)

// Open creates (if needed) the SQLite file at path and returns a Store.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if path == "" {
		path = "jamaah.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s, err := New(ctx, db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and ensures the state table.
func New(ctx context.Context, db *sql.DB, opts Options) (*Store, error) {
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.MemberNames == "" {
		opts.MemberNames = domain.MemberNamesDenormalized
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.SystemClock
	}
	s := &Store{
		db:      db,
		ns:      opts.Namespace,
		latency: opts.ReadLatency,
		clock:   clock,
		ids:     domain.NewIDGenerator(clock),
		logger:  records.LoggerOrNop(opts.Logger),
	}
	s.members = newCollection[domain.Member](s, domain.KindMember, records.Hooks[domain.Member]{})
	s.contents = newCollection[domain.Content](s, domain.KindContent, records.MemberNames(opts.MemberNames, s.memberNames))
	s.masjidPosts = newCollection[domain.MasjidPost](s, domain.KindMasjidPost, records.Hooks[domain.MasjidPost]{})
	s.schedules = newCollection[domain.Schedule](s, domain.KindSchedule, records.Hooks[domain.Schedule]{})
	s.articles = newCollection[domain.Article](s, domain.KindArticle, records.Hooks[domain.Article]{})
	s.donations = newCollection[domain.Donation](s, domain.KindDonation, records.Hooks[domain.Donation]{})
	return s, nil
}

func (s *Store) Driver() domain.Driver                           { return domain.DriverLocal }
func (s *Store) Members() domain.Collection[domain.Member]         { return s.members }
func (s *Store) Contents() domain.Collection[domain.Content]       { return s.contents }
func (s *Store) MasjidPosts() domain.Collection[domain.MasjidPost] { return s.masjidPosts }
func (s *Store) Schedules() domain.Collection[domain.Schedule]     { return s.schedules }
func (s *Store) Articles() domain.Collection[domain.Article]       { return s.articles }
func (s *Store) Donations() domain.Collection[domain.Donation]     { return s.donations }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) flagKey() string { return s.ns + "initialized" }

// NeedsSeed reports whether the namespace lacks the initialized flag. The
// flag covers every kind at once.
func (s *Store) NeedsSeed(ctx context.Context, _ domain.Kind) (bool, error) {
	_, ok, err := s.read(ctx, s.flagKey())
	if err != nil {
		return false, domain.StorageFailure("seed check", "", err)
	}
	return !ok, nil
}

// MarkSeeded persists the initialized flag.
func (s *Store) MarkSeeded(ctx context.Context) error {
	return domain.StorageFailure("mark seeded", "", s.write(ctx, s.flagKey(), []byte("true")))
}

func (s *Store) read(ctx context.Context, bucket string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", bucket, err)
	}
	return payload, true, nil
}

func (s *Store) write(ctx context.Context, bucket string, payload []byte) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", bucket, err)
	}
	return nil
}

func (s *Store) memberNames(ctx context.Context) (map[string]string, error) {
	members, err := s.members.load(ctx)
	if err != nil {
		return nil, err
	}
	return records.NameIndex(members), nil
}

func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
