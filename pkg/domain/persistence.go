package domain

import "context"

// Driver names the backing medium of a Store.
type Driver string

const (
	DriverLocal      Driver = "local"      // device-scoped namespace, one serialized list per kind
	DriverKV         Driver = "kv"         // prefix-addressed key-value store, one key per record
	DriverRelational Driver = "relational" // one table per kind
)

// Collection is the uniform operation set every kind exposes. All methods
// may block on I/O. A missing id on Update yields ErrNotFound; Delete of a
// missing id is a no-op.
type Collection[T any] interface {
	// List returns every record ordered by the kind's sort rule (see Sort).
	List(ctx context.Context) ([]T, error)
	// Get returns the record with id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// Create assigns a fresh id and timestamps, ignoring any the caller set.
	Create(ctx context.Context, record T) (T, error)
	// Update applies mutate to the stored record and refreshes updated_at.
	// id and created_at stay untouched whatever mutate does.
	Update(ctx context.Context, id string, mutate func(*T) error) (T, error)
	// Delete removes the record if present.
	Delete(ctx context.Context, id string) error
	// Import writes records verbatim, keeping their ids and timestamps, and
	// skips ids that already exist. It returns how many were written.
	Import(ctx context.Context, records []T) (int, error)
}

// SeedGuard reports whether a backing medium still needs demonstration data.
// Each adapter decides how: a persisted flag or an empty collection.
type SeedGuard interface {
	NeedsSeed(ctx context.Context, kind Kind) (bool, error)
	MarkSeeded(ctx context.Context) error
}

// Store groups the six collections of one backing medium.
type Store interface {
	SeedGuard
	Driver() Driver
	Members() Collection[Member]
	Contents() Collection[Content]
	MasjidPosts() Collection[MasjidPost]
	Schedules() Collection[Schedule]
	Articles() Collection[Article]
	Donations() Collection[Donation]
	Close() error
}

// MemberNamePolicy decides whether Content.MemberName is stored or derived.
type MemberNamePolicy string

const (
	// MemberNamesDenormalized resolves the name when content is written and
	// stores it; later renames do not propagate.
	MemberNamesDenormalized MemberNamePolicy = "denormalized"
	// MemberNamesJoin never stores the name and resolves it on every read.
	MemberNamesJoin MemberNamePolicy = "join"
)

// ParseMemberNamePolicy validates a policy string; empty yields fallback.
func ParseMemberNamePolicy(s string, fallback MemberNamePolicy) (MemberNamePolicy, bool) {
	switch MemberNamePolicy(s) {
	case "":
		return fallback, true
	case MemberNamesDenormalized, MemberNamesJoin:
		return MemberNamePolicy(s), true
	default:
		return "", false
	}
}
