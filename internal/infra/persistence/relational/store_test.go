package relational

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jamaah/internal/infra/persistence/records"
	"jamaah/pkg/domain"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(1500 * time.Millisecond)
	return c.now
}

func newSQLiteStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = &stepClock{now: time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)}
	}
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "rel.db"), SQLite, opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateGetAndServerOrdering(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	var created []domain.Donation
	for _, title := range []string{"Renovasi", "Santunan", "Ambulans"} {
		d, err := store.Donations().Create(ctx, domain.Donation{Title: title, TargetAmount: 500000000, CollectedAmount: 600000000, Status: domain.DonationActive})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created = append(created, d)
	}
	got, err := store.Donations().Get(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CollectedAmount != 600000000 || !got.CreatedAt.Equal(created[0].CreatedAt) || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("unexpected record %+v", got)
	}
	list, err := store.Donations().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Title != "Ambulans" || list[2].Title != "Renovasi" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestSchedulesOrderedByDate(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	for _, date := range []string{"2026-02-20", "2026-01-16", "2026-02-01"} {
		if _, err := store.Schedules().Create(ctx, domain.Schedule{Name: "Kajian", Date: date, Time: "19:30", Location: "Masjid"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, _ := store.Schedules().List(ctx)
	if list[0].Date != "2026-01-16" || list[2].Date != "2026-02-20" {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestUpdatePartialAndMissing(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	m, _ := store.Members().Create(ctx, domain.Member{Name: "Ahmad", Email: "a@x.id", Phone: "0812", Status: domain.MemberPending})
	approved, err := store.Members().Update(ctx, m.ID, func(rec *domain.Member) error {
		rec.Status = domain.MemberActive
		return nil
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	rejected, err := store.Members().Update(ctx, m.ID, func(rec *domain.Member) error {
		rec.Status = domain.MemberRejected
		return nil
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.MemberRejected || rejected.Email != "a@x.id" {
		t.Fatalf("unexpected member %+v", rejected)
	}
	if !rejected.UpdatedAt.After(approved.UpdatedAt) || !approved.UpdatedAt.After(m.UpdatedAt) {
		t.Fatalf("expected updated_at to increase")
	}
	if _, err := store.Members().Update(ctx, "m404", nil); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Members().Delete(ctx, "m404"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestJoinResolvesMemberNamesServerSide(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	m, _ := store.Members().Create(ctx, domain.Member{Name: "Siti", Email: "s@x.id", Phone: "1"})
	c, err := store.Contents().Create(ctx, domain.Content{Title: "Foto", MemberID: m.ID, MemberName: "ignored", Type: domain.ContentImage, Status: domain.ContentPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.MemberName != "Siti" {
		t.Fatalf("expected joined name, got %q", c.MemberName)
	}
	var stored string
	if err := store.DB().QueryRow(`SELECT member_name FROM contents WHERE id = ?`, c.ID).Scan(&stored); err != nil {
		t.Fatalf("raw select: %v", err)
	}
	if stored != "" {
		t.Fatalf("join policy must not persist names, got %q", stored)
	}
	if err := store.Members().Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	list, _ := store.Contents().List(ctx)
	if len(list) != 1 || list[0].MemberName != domain.UnknownMemberName {
		t.Fatalf("expected Unknown for orphan, got %+v", list)
	}
}

func TestDenormalizedPolicyStoresName(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{MemberNames: domain.MemberNamesDenormalized})
	m, _ := store.Members().Create(ctx, domain.Member{Name: "Rizki", Email: "r@x.id", Phone: "1"})
	c, _ := store.Contents().Create(ctx, domain.Content{Title: "Video", MemberID: m.ID, Type: domain.ContentVideo})
	_, _ = store.Members().Update(ctx, m.ID, func(rec *domain.Member) error { rec.Name = "Rizki M."; return nil })
	got, _ := store.Contents().Get(ctx, c.ID)
	if got.MemberName != "Rizki" {
		t.Fatalf("expected stored name, got %q", got.MemberName)
	}
}

func TestImportAndSeedGuard(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	need, err := store.NeedsSeed(ctx, domain.KindArticle)
	if err != nil || !need {
		t.Fatalf("expected empty table to need seed: %v %v", need, err)
	}
	ts := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	batch := []domain.Article{
		{Base: domain.Base{ID: "a1", CreatedAt: ts, UpdatedAt: ts}, Title: "Adab", Category: "Akhlak", Content: "...", Status: domain.ArticlePublished},
		{Base: domain.Base{ID: "a2", CreatedAt: ts.Add(time.Hour), UpdatedAt: ts.Add(time.Hour)}, Title: "Zakat", Category: "Fiqih", Content: "...", Status: domain.ArticleDraft},
	}
	if n, err := store.Articles().Import(ctx, batch); err != nil || n != 2 {
		t.Fatalf("import: %d %v", n, err)
	}
	if n, err := store.Articles().Import(ctx, batch); err != nil || n != 0 {
		t.Fatalf("reimport: %d %v", n, err)
	}
	got, _ := store.Articles().Get(ctx, "a1")
	if !got.CreatedAt.Equal(ts) {
		t.Fatalf("timestamps must be preserved, got %v", got.CreatedAt)
	}
	if need, _ := store.NeedsSeed(ctx, domain.KindArticle); need {
		t.Fatalf("seeded table must not need seed")
	}
}

func TestSeedMarkerOutlivesEmptiedTables(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, Options{})
	if err := store.MarkSeeded(ctx); err != nil {
		t.Fatalf("mark seeded: %v", err)
	}
	if err := store.MarkSeeded(ctx); err != nil {
		t.Fatalf("second mark seeded: %v", err)
	}
	var rows int
	if err := store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM "seed_marker"`).Scan(&rows); err != nil || rows != 1 {
		t.Fatalf("expected one marker row, got %d %v", rows, err)
	}
	need, err := store.NeedsSeed(ctx, domain.KindSchedule)
	if err != nil || need {
		t.Fatalf("marked store must not need seed: %v %v", need, err)
	}
}

func TestDialectByName(t *testing.T) {
	if d, err := DialectByName(""); err != nil || d.Name != "postgres" {
		t.Fatalf("default: %+v %v", d, err)
	}
	if d, _ := DialectByName("sqlite"); d.bind(3) != "?" {
		t.Fatalf("sqlite binds with ?")
	}
	if Postgres.bind(3) != "$3" {
		t.Fatalf("postgres binds with $n")
	}
	if _, err := DialectByName("mysql"); err == nil {
		t.Fatalf("expected unknown dialect error")
	}
}

func TestOpenPostgresAppliesSchemaThroughOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	var gotDriver, gotDSN string
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return db, nil
	})
	defer restore()
	for i := 0; i < 9; i++ {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	store, err := Open(context.Background(), "", Postgres, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gotDriver != "pgx" || gotDSN != DefaultDSN {
		t.Fatalf("unexpected open args %s %s", gotDriver, gotDSN)
	}

	mock.ExpectQuery(`SELECT .* FROM "members" t WHERE t."id" = \$1`).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "email", "phone", "status"}).
			AddRow("m1", time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC), "Ahmad", "a@x.id", "0812", "pending"))
	m, err := store.Members().Get(context.Background(), "m1")
	if err != nil || m.Name != "Ahmad" || m.Status != domain.MemberPending {
		t.Fatalf("get: %+v %v", m, err)
	}

	mock.ExpectQuery(`SELECT .* FROM "donations" t ORDER BY`).WillReturnError(errors.New("connection reset"))
	if _, err := store.Donations().List(context.Background()); !domain.IsStorageFailure(err) {
		t.Fatalf("expected storage failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestContentsSelectJoinsMembers(t *testing.T) {
	store := &Store{dialect: Postgres, policy: domain.MemberNamesJoin}
	c := newCollection(store, contentsTable, contentHooksForTest())
	q := c.selectSQL()
	if !strings.Contains(q, `LEFT JOIN "members" m`) || !strings.Contains(q, "COALESCE(m.\"name\", 'Unknown')") {
		t.Fatalf("unexpected select %s", q)
	}
	plain := newCollection(&Store{dialect: Postgres, policy: domain.MemberNamesDenormalized}, contentsTable, contentHooksForTest())
	if strings.Contains(plain.selectSQL(), "JOIN") {
		t.Fatalf("denormalized select should not join")
	}
}

func contentHooksForTest() records.Hooks[domain.Content] { return records.Hooks[domain.Content]{} }
