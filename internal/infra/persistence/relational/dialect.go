package relational

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// sqliteTimeLayout is fixed width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z"

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	Name       string
	DriverName string
	// TimeType is the column type used for created_at/updated_at.
	TimeType string
	bind     func(n int) string
	encode   func(time.Time) any
}

// Postgres speaks through pgx's database/sql driver.
var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "pgx",
	TimeType:   "TIMESTAMPTZ",
	bind:       func(n int) string { return "$" + strconv.Itoa(n) },
	encode:     func(t time.Time) any { return t.UTC() },
}

// SQLite uses the pure go modernc driver and stores times as UTC text.
var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	TimeType:   "TEXT",
	bind:       func(int) string { return "?" },
	encode:     func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

// DialectByName resolves "postgres" or "sqlite"; empty means postgres.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case "", Postgres.Name, "pgx":
		return Postgres, nil
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unknown sql dialect %q", name)
	}
}

// placeholders returns n bind markers starting at position from.
func (d Dialect) placeholders(from, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = d.bind(from + i)
	}
	return out
}

// dbTime scans both native timestamps and the sqlite text encoding.
type dbTime struct{ t *time.Time }

func (d dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.t = v.UTC()
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported time value %T", src)
	}
}

func (d dbTime) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse time %q: %w", s, err)
	}
	*d.t = t.UTC()
	return nil
}

var _ sql.Scanner = dbTime{}
