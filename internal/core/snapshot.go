package core

import (
	"context"
	"fmt"

	"jamaah/pkg/domain"
)

// KindImport reports the outcome of importing one collection.
type KindImport struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ImportReport is keyed by kind.
type ImportReport map[domain.Kind]KindImport

// Inserted sums the inserted records across kinds.
func (r ImportReport) Inserted() int {
	total := 0
	for _, k := range r {
		total += k.Inserted
	}
	return total
}

// Export reads every collection into a snapshot stamped with the service clock.
func (s *Service) Export(ctx context.Context) (domain.Snapshot, error) {
	return run(ctx, s, "snapshot.export", func(ctx context.Context) (domain.Snapshot, error) {
		snap := domain.Snapshot{
			ExportedAt: domain.Timestamp(s.clock.Now()),
			Driver:     s.store.Driver(),
		}
		var err error
		if snap.Members, err = s.store.Members().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		if snap.Contents, err = s.store.Contents().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		if snap.MasjidPosts, err = s.store.MasjidPosts().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		if snap.Schedules, err = s.store.Schedules().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		if snap.Articles, err = s.store.Articles().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		if snap.Donations, err = s.store.Donations().List(ctx); err != nil {
			return domain.Snapshot{}, err
		}
		return snap, nil
	})
}

// Import writes the snapshot's records verbatim, members first. Records whose
// id already exists are skipped, never overwritten. Every record is validated
// before anything is written.
func (s *Service) Import(ctx context.Context, snap domain.Snapshot) (ImportReport, error) {
	return run(ctx, s, "snapshot.import", func(ctx context.Context) (ImportReport, error) {
		if err := s.checkSnapshot(snap); err != nil {
			return nil, err
		}
		report := ImportReport{}
		steps := []func() error{
			func() error { return importKind(ctx, s.store.Members(), domain.KindMember, snap.Members, report) },
			func() error { return importKind(ctx, s.store.Contents(), domain.KindContent, snap.Contents, report) },
			func() error {
				return importKind(ctx, s.store.MasjidPosts(), domain.KindMasjidPost, snap.MasjidPosts, report)
			},
			func() error { return importKind(ctx, s.store.Schedules(), domain.KindSchedule, snap.Schedules, report) },
			func() error { return importKind(ctx, s.store.Articles(), domain.KindArticle, snap.Articles, report) },
			func() error { return importKind(ctx, s.store.Donations(), domain.KindDonation, snap.Donations, report) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return report, err
			}
		}
		return report, nil
	})
}

func importKind[T any](ctx context.Context, coll domain.Collection[T], kind domain.Kind, items []T, report ImportReport) error {
	if len(items) == 0 {
		return nil
	}
	inserted, err := coll.Import(ctx, items)
	if err != nil {
		return err
	}
	report[kind] = KindImport{Inserted: inserted, Skipped: len(items) - inserted}
	return nil
}

func (s *Service) checkSnapshot(snap domain.Snapshot) error {
	if err := checkAll(s, snap.Members); err != nil {
		return err
	}
	if err := checkAll(s, snap.Contents); err != nil {
		return err
	}
	if err := checkAll(s, snap.MasjidPosts); err != nil {
		return err
	}
	if err := checkAll(s, snap.Schedules); err != nil {
		return err
	}
	if err := checkAll(s, snap.Articles); err != nil {
		return err
	}
	return checkAll(s, snap.Donations)
}

func checkAll[T any, P domain.Record[T]](s *Service, items []T) error {
	for i := range items {
		rec := P(&items[i])
		kind := rec.Kind()
		if rec.Meta().ID == "" {
			return domain.ValidationError{Kind: kind, Fields: map[string]string{fmt.Sprintf("%s[%d].id", kind.Collection(), i): "required"}}
		}
		if err := s.check(kind, rec); err != nil {
			return err
		}
	}
	return nil
}
