// Package relational implements the relational adapter: one table per kind,
// server-side ordering, and a server-side join for content member names.
package relational

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"jamaah/internal/infra/persistence/records"
	"jamaah/pkg/domain"
)

// DefaultDSN points at a local Postgres database.
const DefaultDSN = "postgres://localhost/jamaah?sslmode=disable"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the function used to open connections; tests use it
// to inject sqlmock. It returns a restore func.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

// Options tune a Store. The zero value is usable.
type Options struct {
	MemberNames domain.MemberNamePolicy
	Clock       domain.Clock
	Logger      records.Logger
}

// Store is the relational adapter.
type Store struct {
	db      *sql.DB
	dialect Dialect
	policy  domain.MemberNamePolicy
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

// Open connects with dsn (DefaultDSN for postgres when empty), pings, and
// ensures the schema.
func Open(ctx context.Context, dsn string, dialect Dialect, opts Options) (*Store, error) {
	if dsn == "" && dialect.Name == Postgres.Name {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(dialect.DriverName, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	s, err := New(ctx, db, dialect, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps db and applies the schema.
func New(ctx context.Context, db *sql.DB, dialect Dialect, opts Options) (*Store, error) {
	if dialect.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}
	if opts.MemberNames == "" {
		opts.MemberNames = domain.MemberNamesJoin
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.SystemClock
	}
	s := &Store{
		db:      db,
		dialect: dialect,
		policy:  opts.MemberNames,
		clock:   clock,
		ids:     domain.NewIDGenerator(clock),
		logger:  records.LoggerOrNop(opts.Logger),
	}
	contentHooks := records.MemberNames(opts.MemberNames, s.memberNames)
	if opts.MemberNames == domain.MemberNamesJoin {
		// resolved by the LEFT JOIN in select
		contentHooks.AfterRead = nil
	}
	s.members = newCollection(s, membersTable, records.Hooks[domain.Member]{})
	s.contents = newCollection(s, contentsTable, contentHooks)
	s.masjidPosts = newCollection(s, masjidPostsTable, records.Hooks[domain.MasjidPost]{})
	s.schedules = newCollection(s, schedulesTable, records.Hooks[domain.Schedule]{})
	s.articles = newCollection(s, articlesTable, records.Hooks[domain.Article]{})
	s.donations = newCollection(s, donationsTable, records.Hooks[domain.Donation]{})
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := [][]string{
		s.members.ddl(), s.contents.ddl(), s.masjidPosts.ddl(),
		s.schedules.ddl(), s.articles.ddl(), s.donations.ddl(),
	}
	for _, group := range stmts {
		for _, stmt := range group {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute ddl: %w", err)
			}
		}
	}
	if _, err := s.db.ExecContext(ctx, seedMarkerDDL); err != nil {
		return fmt.Errorf("execute ddl: %w", err)
	}
	return nil
}

func (s *Store) Driver() domain.Driver                             { return domain.DriverRelational }
func (s *Store) Members() domain.Collection[domain.Member]         { return s.members }
func (s *Store) Contents() domain.Collection[domain.Content]       { return s.contents }
func (s *Store) MasjidPosts() domain.Collection[domain.MasjidPost] { return s.masjidPosts }
func (s *Store) Schedules() domain.Collection[domain.Schedule]     { return s.schedules }
func (s *Store) Articles() domain.Collection[domain.Article]       { return s.articles }
func (s *Store) Donations() domain.Collection[domain.Donation]     { return s.donations }

// DB exposes the underlying handle for integration hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect reports the active dialect.
func (s *Store) Dialect() Dialect { return s.dialect }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// seedMarkerDDL holds at most one row, written once the seed dataset has
// been applied.
const seedMarkerDDL = `CREATE TABLE IF NOT EXISTS "seed_marker" (
	"id" INTEGER PRIMARY KEY,
	"seeded_at" TEXT NOT NULL
)`

// NeedsSeed reports whether the kind should receive the seed dataset: no
// marker row exists and the kind's table is empty.
func (s *Store) NeedsSeed(ctx context.Context, kind domain.Kind) (bool, error) {
	var marked int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "seed_marker"`).Scan(&marked); err != nil {
		return false, domain.StorageFailure("seed check", kind, err)
	}
	if marked > 0 {
		return false, nil
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quote(kind.Collection())).Scan(&n); err != nil {
		return false, domain.StorageFailure("seed check", kind, err)
	}
	return n == 0, nil
}

// MarkSeeded writes the marker row; repeated calls keep the first one.
func (s *Store) MarkSeeded(ctx context.Context) error {
	q := `INSERT INTO "seed_marker" ("id", "seeded_at") VALUES (1, ` + s.dialect.bind(1) + `) ON CONFLICT ("id") DO NOTHING`
	if _, err := s.db.ExecContext(ctx, q, s.clock.Now().UTC().Format(time.RFC3339)); err != nil {
		return domain.StorageFailure("mark seeded", "", err)
	}
	return nil
}

func (s *Store) memberNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM members`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

func quote(ident string) string { return `"` + ident + `"` }
