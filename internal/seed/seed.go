// Package seed populates empty stores with the fixed demonstration records.
package seed

import (
	"context"
	"fmt"

	"jamaah/pkg/domain"
)

// Report counts inserted records per kind.
type Report map[domain.Kind]int

// Total sums the report.
func (r Report) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// Run imports the dataset into every kind the store says still needs it,
// members first, then marks the store seeded. Existing ids are never
// overwritten, so running it twice inserts nothing the second time.
func Run(ctx context.Context, store domain.Store) (Report, error) {
	return Apply(ctx, store, Dataset())
}

// Apply is Run with an explicit dataset.
func Apply(ctx context.Context, store domain.Store, data domain.Snapshot) (Report, error) {
	report := Report{}
	steps := []func() error{
		func() error { return seedKind(ctx, store, domain.KindMember, store.Members(), data.Members, report) },
		func() error { return seedKind(ctx, store, domain.KindContent, store.Contents(), data.Contents, report) },
		func() error {
			return seedKind(ctx, store, domain.KindMasjidPost, store.MasjidPosts(), data.MasjidPosts, report)
		},
		func() error { return seedKind(ctx, store, domain.KindSchedule, store.Schedules(), data.Schedules, report) },
		func() error { return seedKind(ctx, store, domain.KindArticle, store.Articles(), data.Articles, report) },
		func() error { return seedKind(ctx, store, domain.KindDonation, store.Donations(), data.Donations, report) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return report, err
		}
	}
	if err := store.MarkSeeded(ctx); err != nil {
		return report, fmt.Errorf("mark seeded: %w", err)
	}
	return report, nil
}

func seedKind[T any](ctx context.Context, store domain.SeedGuard, kind domain.Kind, coll domain.Collection[T], items []T, report Report) error {
	need, err := store.NeedsSeed(ctx, kind)
	if err != nil {
		return fmt.Errorf("seed check %s: %w", kind, err)
	}
	if !need {
		return nil
	}
	n, err := coll.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("seed %s: %w", kind, err)
	}
	report[kind] = n
	return nil
}
