package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jamaah/internal/infra/persistence/records"
	"jamaah/pkg/domain"
)

type collection[T any, P domain.Record[T]] struct {
	s     *Store
	tbl   table[T]
	hooks records.Hooks[T]
	// joined is set for contents under the join policy.
	joined bool
}

func newCollection[T any, P domain.Record[T]](s *Store, tbl table[T], hooks records.Hooks[T]) *collection[T, P] {
	joined := tbl.kind == domain.KindContent && s.policy == domain.MemberNamesJoin
	return &collection[T, P]{s: s, tbl: tbl, hooks: hooks, joined: joined}
}

func (c *collection[T, P]) kind() domain.Kind { return c.tbl.kind }

func (c *collection[T, P]) ddl() []string {
	cols := []string{
		`"id" TEXT PRIMARY KEY`,
		`"created_at" ` + c.s.dialect.TimeType + ` NOT NULL`,
		`"updated_at" ` + c.s.dialect.TimeType + ` NOT NULL`,
	}
	for _, col := range c.tbl.columns {
		cols = append(cols, quote(col.name)+" "+col.ddl)
	}
	out := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quote(c.tbl.name()), strings.Join(cols, ",\n\t"))}
	for _, idx := range c.tbl.indexes {
		out = append(out, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quote("idx_"+c.tbl.name()+"_"+idx), quote(c.tbl.name()), quote(idx)))
	}
	return out
}

func (c *collection[T, P]) selectSQL() string {
	cols := []string{`t."id"`, `t."created_at"`, `t."updated_at"`}
	for _, col := range c.tbl.columns {
		if c.joined && col.name == "member_name" {
			cols = append(cols, fmt.Sprintf("COALESCE(m.%s, '%s')", quote("name"), domain.UnknownMemberName))
			continue
		}
		cols = append(cols, "t."+quote(col.name))
	}
	q := "SELECT " + strings.Join(cols, ", ") + " FROM " + quote(c.tbl.name()) + " t"
	if c.joined {
		q += ` LEFT JOIN "members" m ON m."id" = t."member_id"`
	}
	return q
}

func (c *collection[T, P]) scan(rows interface{ Scan(...any) error }) (T, error) {
	var rec T
	meta := P(&rec).Meta()
	dest := []any{&meta.ID, dbTime{&meta.CreatedAt}, dbTime{&meta.UpdatedAt}}
	for _, col := range c.tbl.columns {
		dest = append(dest, col.ptr(&rec))
	}
	err := rows.Scan(dest...)
	return rec, err
}

// List runs a server-side ordered query.
func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	rows, err := c.s.db.QueryContext(ctx, c.selectSQL()+" ORDER BY "+c.tbl.orderBy)
	if err != nil {
		return nil, domain.StorageFailure("list", c.kind(), err)
	}
	defer func() { _ = rows.Close() }()
	items := []T{}
	for rows.Next() {
		rec, err := c.scan(rows)
		if err != nil {
			return nil, domain.StorageFailure("list", c.kind(), err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("list", c.kind(), err)
	}
	if err := c.hooks.Read(ctx, items); err != nil {
		return nil, domain.StorageFailure("list", c.kind(), err)
	}
	return items, nil
}

func (c *collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	row := c.s.db.QueryRowContext(ctx, c.selectSQL()+` WHERE t."id" = `+c.s.dialect.bind(1), id)
	rec, err := c.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, domain.ErrNotFound{Kind: c.kind(), ID: id}
	}
	if err != nil {
		return rec, domain.StorageFailure("get", c.kind(), err)
	}
	out := []T{rec}
	if err := c.hooks.Read(ctx, out); err != nil {
		return rec, domain.StorageFailure("get", c.kind(), err)
	}
	return out[0], nil
}

func (c *collection[T, P]) insertSQL() string {
	names := []string{`"id"`, `"created_at"`, `"updated_at"`}
	for _, col := range c.tbl.columns {
		names = append(names, quote(col.name))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(c.tbl.name()),
		strings.Join(names, ", "), strings.Join(c.s.dialect.placeholders(1, len(names)), ", "))
}

func (c *collection[T, P]) values(rec *T) []any {
	meta := P(rec).Meta()
	args := []any{meta.ID, c.s.dialect.encode(meta.CreatedAt), c.s.dialect.encode(meta.UpdatedAt)}
	for _, col := range c.tbl.columns {
		args = append(args, col.get(rec))
	}
	return args
}

func (c *collection[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	records.Stamp[T, P](&rec, c.s.ids, c.s.clock)
	if err := c.hooks.Write(ctx, &rec); err != nil {
		return zero, domain.StorageFailure("create", c.kind(), err)
	}
	if _, err := c.s.db.ExecContext(ctx, c.insertSQL(), c.values(&rec)...); err != nil {
		return zero, domain.StorageFailure("create", c.kind(), err)
	}
	return c.Get(ctx, P(&rec).Meta().ID)
}

// Update reads the row, applies mutate, and writes every column back. The
// read and write are separate statements, so concurrent updates of one id
// can lose a write.
func (c *collection[T, P]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	current, err := c.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	next, err := records.Mutate[T, P](current, mutate, c.s.clock)
	if err != nil {
		return zero, err
	}
	if err := c.hooks.Write(ctx, &next); err != nil {
		return zero, domain.StorageFailure("update", c.kind(), err)
	}
	sets := []string{`"updated_at" = ` + c.s.dialect.bind(1)}
	args := []any{c.s.dialect.encode(P(&next).Meta().UpdatedAt)}
	for _, col := range c.tbl.columns {
		if c.joined && col.name == "member_name" {
			continue
		}
		args = append(args, col.get(&next))
		sets = append(sets, quote(col.name)+" = "+c.s.dialect.bind(len(args)))
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = %s`, quote(c.tbl.name()), strings.Join(sets, ", "), c.s.dialect.bind(len(args)))
	res, err := c.s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return zero, domain.StorageFailure("update", c.kind(), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zero, domain.ErrNotFound{Kind: c.kind(), ID: id}
	}
	return c.Get(ctx, id)
}

func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	_, err := c.s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE "id" = %s`, quote(c.tbl.name()), c.s.dialect.bind(1)), id)
	return domain.StorageFailure("delete", c.kind(), err)
}

// Import inserts records verbatim and leaves existing ids alone.
func (c *collection[T, P]) Import(ctx context.Context, incoming []T) (int, error) {
	batch := append([]T(nil), incoming...)
	c.hooks.Import(batch)
	q := c.insertSQL() + ` ON CONFLICT ("id") DO NOTHING`
	inserted := 0
	for i := range batch {
		records.Normalize[T, P](&batch[i])
		res, err := c.s.db.ExecContext(ctx, q, c.values(&batch[i])...)
		if err != nil {
			return inserted, domain.StorageFailure("import", c.kind(), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
