package relational

import "jamaah/pkg/domain"

// column maps one entity field to a table column.
type column[T any] struct {
	name string
	ddl  string
	get  func(*T) any
	ptr  func(*T) any
}

// table describes how one kind is stored. id, created_at and updated_at
// are implicit.
type table[T any] struct {
	kind    domain.Kind
	columns []column[T]
	orderBy string
	indexes []string
}

func (t table[T]) name() string { return t.kind.Collection() }

func text[T any](name string, field func(*T) *string) column[T] {
	return column[T]{
		name: name,
		ddl:  "TEXT NOT NULL DEFAULT ''",
		get:  func(r *T) any { return *field(r) },
		ptr:  func(r *T) any { return field(r) },
	}
}

func bigint[T any](name string, field func(*T) *int64) column[T] {
	return column[T]{
		name: name,
		ddl:  "BIGINT NOT NULL DEFAULT 0",
		get:  func(r *T) any { return *field(r) },
		ptr:  func(r *T) any { return field(r) },
	}
}

const newestFirst = "t.created_at DESC, t.id ASC"

var membersTable = table[domain.Member]{
	kind: domain.KindMember,
	columns: []column[domain.Member]{
		text("name", func(m *domain.Member) *string { return &m.Name }),
		text("email", func(m *domain.Member) *string { return &m.Email }),
		text("phone", func(m *domain.Member) *string { return &m.Phone }),
		text("status", func(m *domain.Member) *string { return (*string)(&m.Status) }),
	},
	orderBy: newestFirst,
}

// contentsTable keeps member_name for the denormalized policy; under the
// join policy the column stays blank and reads come from members.
var contentsTable = table[domain.Content]{
	kind: domain.KindContent,
	columns: []column[domain.Content]{
		text("title", func(c *domain.Content) *string { return &c.Title }),
		text("member_id", func(c *domain.Content) *string { return &c.MemberID }),
		text("member_name", func(c *domain.Content) *string { return &c.MemberName }),
		text("type", func(c *domain.Content) *string { return (*string)(&c.Type) }),
		text("status", func(c *domain.Content) *string { return (*string)(&c.Status) }),
		text("content_url", func(c *domain.Content) *string { return &c.ContentURL }),
		text("description", func(c *domain.Content) *string { return &c.Description }),
	},
	orderBy: newestFirst,
	indexes: []string{"member_id"},
}

var masjidPostsTable = table[domain.MasjidPost]{
	kind: domain.KindMasjidPost,
	columns: []column[domain.MasjidPost]{
		text("title", func(p *domain.MasjidPost) *string { return &p.Title }),
		text("content", func(p *domain.MasjidPost) *string { return &p.Content }),
		text("type", func(p *domain.MasjidPost) *string { return (*string)(&p.Type) }),
	},
	orderBy: newestFirst,
}

var schedulesTable = table[domain.Schedule]{
	kind: domain.KindSchedule,
	columns: []column[domain.Schedule]{
		text("name", func(s *domain.Schedule) *string { return &s.Name }),
		text("date", func(s *domain.Schedule) *string { return &s.Date }),
		text("time", func(s *domain.Schedule) *string { return &s.Time }),
		text("location", func(s *domain.Schedule) *string { return &s.Location }),
		text("description", func(s *domain.Schedule) *string { return &s.Description }),
	},
	orderBy: "t.date ASC, t.id ASC",
	indexes: []string{"date"},
}

var articlesTable = table[domain.Article]{
	kind: domain.KindArticle,
	columns: []column[domain.Article]{
		text("title", func(a *domain.Article) *string { return &a.Title }),
		text("category", func(a *domain.Article) *string { return &a.Category }),
		text("content", func(a *domain.Article) *string { return &a.Content }),
		text("status", func(a *domain.Article) *string { return (*string)(&a.Status) }),
	},
	orderBy: newestFirst,
}

var donationsTable = table[domain.Donation]{
	kind: domain.KindDonation,
	columns: []column[domain.Donation]{
		text("title", func(d *domain.Donation) *string { return &d.Title }),
		text("description", func(d *domain.Donation) *string { return &d.Description }),
		bigint("target_amount", func(d *domain.Donation) *int64 { return &d.TargetAmount }),
		bigint("collected_amount", func(d *domain.Donation) *int64 { return &d.CollectedAmount }),
		text("status", func(d *domain.Donation) *string { return (*string)(&d.Status) }),
	},
	orderBy: newestFirst,
}
