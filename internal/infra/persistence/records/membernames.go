package records

import (
	"context"

	"jamaah/pkg/domain"
)

// Directory returns member names keyed by id.
type Directory func(ctx context.Context) (map[string]string, error)

// MemberNames builds the content hooks for policy. Under the denormalized
// policy the name is resolved on write and stored; a missing member keeps
// the caller's name, or Unknown when none was given. Under the join policy
// the stored name is always blank and resolved on every read.
func MemberNames(policy domain.MemberNamePolicy, dir Directory) Hooks[domain.Content] {
	if policy == domain.MemberNamesJoin {
		return Hooks[domain.Content]{
			BeforeWrite: func(_ context.Context, c *domain.Content) error {
				c.MemberName = ""
				return nil
			},
			AfterRead: func(ctx context.Context, items []domain.Content) error {
				names, err := dir(ctx)
				if err != nil {
					return err
				}
				for i := range items {
					items[i].MemberName = resolve(names, items[i].MemberID, "")
				}
				return nil
			},
			BeforeImport: func(items []domain.Content) {
				for i := range items {
					items[i].MemberName = ""
				}
			},
		}
	}
	return Hooks[domain.Content]{
		BeforeWrite: func(ctx context.Context, c *domain.Content) error {
			names, err := dir(ctx)
			if err != nil {
				return err
			}
			c.MemberName = resolve(names, c.MemberID, c.MemberName)
			return nil
		},
	}
}

func resolve(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return domain.UnknownMemberName
}

// NameIndex builds a Directory result from a member list.
func NameIndex(members []domain.Member) map[string]string {
	out := make(map[string]string, len(members))
	for _, m := range members {
		out[m.ID] = m.Name
	}
	return out
}
