package local

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jamaah/pkg/domain"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = &stepClock{now: time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)}
	}
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "local.db"), opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateGetListMembers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	created := make([]domain.Member, 0, 3)
	for _, name := range []string{"Ahmad", "Siti", "Rizki"} {
		m, err := store.Members().Create(ctx, domain.Member{Name: name, Email: name + "@example.com", Phone: "0812", Status: domain.MemberPending})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if m.ID == "" || !m.CreatedAt.Equal(m.UpdatedAt) {
			t.Fatalf("expected stamped record, got %+v", m.Base)
		}
		created = append(created, m)
	}
	got, err := store.Members().Get(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created[1].ID || got.Name != "Siti" || !got.CreatedAt.Equal(created[1].CreatedAt) {
		t.Fatalf("expected %+v, got %+v", created[1], got)
	}
	list, err := store.Members().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Rizki" || list[2].Name != "Ahmad" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestUpdateKeepsIdentityAndAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	a, err := store.Articles().Create(ctx, domain.Article{Title: "Adab", Category: "Akhlak", Content: "...", Status: domain.ArticleDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := store.Articles().Update(ctx, a.ID, func(rec *domain.Article) error {
		rec.Status = domain.ArticlePublished
		rec.ID = "hijack"
		rec.CreatedAt = time.Time{}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != a.ID || !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("identity changed: %+v", updated.Base)
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}
	if updated.Title != a.Title || updated.Status != domain.ArticlePublished {
		t.Fatalf("unexpected article %+v", updated)
	}
}

func TestUpdateMissingAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	if _, err := store.Donations().Create(ctx, domain.Donation{Title: "Renovasi", TargetAmount: 10, Status: domain.DonationPending}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := store.Donations().Update(ctx, "d404", func(*domain.Donation) error { return nil })
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Donations().Delete(ctx, "d404"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	list, _ := store.Donations().List(ctx)
	if len(list) != 1 {
		t.Fatalf("collection modified: %+v", list)
	}
}

func TestSchedulesSortByDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	for _, date := range []string{"2026-03-01", "2026-01-10", "2026-02-01"} {
		if _, err := store.Schedules().Create(ctx, domain.Schedule{Name: date, Date: date, Time: "19:00", Location: "Aula"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, err := store.Schedules().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Date != "2026-01-10" || list[1].Date != "2026-02-01" || list[2].Date != "2026-03-01" {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestDenormalizedMemberNameIsStored(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	m, _ := store.Members().Create(ctx, domain.Member{Name: "Ahmad", Email: "a@x.id", Phone: "1"})
	c, err := store.Contents().Create(ctx, domain.Content{Title: "Kajian", MemberID: m.ID, Type: domain.ContentPost, Status: domain.ContentPending})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if c.MemberName != "Ahmad" {
		t.Fatalf("expected denormalized name, got %q", c.MemberName)
	}
	if _, err := store.Members().Update(ctx, m.ID, func(rec *domain.Member) error { rec.Name = "Ahmad F."; return nil }); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ := store.Contents().Get(ctx, c.ID)
	if got.MemberName != "Ahmad" {
		t.Fatalf("denormalized name should not follow renames, got %q", got.MemberName)
	}
}

func TestJoinMemberNameResolvesOnRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{MemberNames: domain.MemberNamesJoin})
	m, _ := store.Members().Create(ctx, domain.Member{Name: "Siti", Email: "s@x.id", Phone: "1"})
	c, _ := store.Contents().Create(ctx, domain.Content{Title: "Foto", MemberID: m.ID, MemberName: "stale", Type: domain.ContentImage})
	if c.MemberName != "Siti" {
		t.Fatalf("expected resolved name, got %q", c.MemberName)
	}
	if err := store.Members().Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	list, _ := store.Contents().List(ctx)
	if len(list) != 1 || list[0].MemberName != domain.UnknownMemberName {
		t.Fatalf("expected orphaned content with Unknown name, got %+v", list)
	}
}

func TestSeedFlag(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{Namespace: "test_"})
	need, err := store.NeedsSeed(ctx, domain.KindMember)
	if err != nil || !need {
		t.Fatalf("expected fresh namespace to need seed: %v %v", need, err)
	}
	if err := store.MarkSeeded(ctx); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if need, _ := store.NeedsSeed(ctx, domain.KindDonation); need {
		t.Fatalf("flag should cover every kind")
	}
}

func TestImportSkipsExistingIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	ts := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	batch := []domain.Member{
		{Base: domain.Base{ID: "m1", CreatedAt: ts, UpdatedAt: ts}, Name: "Ahmad"},
		{Base: domain.Base{ID: "m2", CreatedAt: ts, UpdatedAt: ts}, Name: "Siti"},
	}
	n, err := store.Members().Import(ctx, batch)
	if err != nil || n != 2 {
		t.Fatalf("first import: %d %v", n, err)
	}
	batch[0].Name = "overwritten"
	n, err = store.Members().Import(ctx, batch)
	if err != nil || n != 0 {
		t.Fatalf("second import: %d %v", n, err)
	}
	got, _ := store.Members().Get(ctx, "m1")
	if got.Name != "Ahmad" || !got.CreatedAt.Equal(ts) {
		t.Fatalf("import must not overwrite, got %+v", got)
	}
}

func TestListWaitsForLatencyAndHonoursContext(t *testing.T) {
	store := newTestStore(t, Options{ReadLatency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Members().List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestMalformedListDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, Options{})
	if err := store.write(ctx, store.ns+"members", []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err := store.Members().List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
	if _, err := store.Members().Get(ctx, "m1"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Members().Create(ctx, domain.Member{Name: "x"}); !domain.IsStorageFailure(err) {
		t.Fatalf("expected storage failure on write path, got %v", err)
	}
}

func TestWriteFailureSurfacesAsStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS state").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := New(context.Background(), db, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	mock.ExpectQuery("SELECT payload FROM state").WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	mock.ExpectExec("INSERT INTO state").WillReturnError(errors.New("disk full"))
	_, err = store.MasjidPosts().Create(context.Background(), domain.MasjidPost{Title: "Info", Content: "...", Type: domain.PostAnnouncement})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
