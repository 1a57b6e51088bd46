// Package records holds helpers shared by the storage adapters: id and
// timestamp stamping, the JSON codec, and the member-name policy hooks.
package records

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"jamaah/pkg/domain"
)

// Logger is the structured logger adapters accept. core.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = noopLogger{}

// LoggerOrNop returns l or NopLogger when l is nil.
func LoggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger
	}
	return l
}

// Stamp assigns a fresh id and equal created/updated timestamps.
func Stamp[T any, P domain.Record[T]](rec *T, ids *domain.IDGenerator, clock domain.Clock) {
	meta := P(rec).Meta()
	now := domain.Timestamp(clock.Now())
	meta.ID = ids.Next(P(rec).Kind())
	meta.CreatedAt = now
	meta.UpdatedAt = now
}

// Mutate applies fn to a copy of current and returns the result with id and
// created_at restored and updated_at strictly after the previous value.
func Mutate[T any, P domain.Record[T]](current T, fn func(*T) error, clock domain.Clock) (T, error) {
	prev := *P(&current).Meta()
	next := current
	if fn != nil {
		if err := fn(&next); err != nil {
			var zero T
			return zero, err
		}
	}
	meta := P(&next).Meta()
	meta.ID = prev.ID
	meta.CreatedAt = prev.CreatedAt
	now := domain.Timestamp(clock.Now())
	if !now.After(prev.UpdatedAt) {
		now = prev.UpdatedAt.Add(domain.TimestampResolution)
	}
	meta.UpdatedAt = now
	return next, nil
}

// Normalize truncates imported timestamps to the stored precision.
func Normalize[T any, P domain.Record[T]](rec *T) {
	meta := P(rec).Meta()
	meta.CreatedAt = domain.Timestamp(meta.CreatedAt)
	meta.UpdatedAt = domain.Timestamp(meta.UpdatedAt)
}

// Encode serializes a record or list.
func Encode(v any) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Decode parses data into v.
func Decode(data []byte, v any) error {
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Find returns the index of id in items or -1.
func Find[T any, P domain.Record[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

// Hooks adjust records on their way in and out of a backing medium. Only
// contents carry hooks today; the zero value does nothing.
type Hooks[T any] struct {
	BeforeWrite  func(ctx context.Context, rec *T) error
	AfterRead    func(ctx context.Context, items []T) error
	BeforeImport func(items []T)
}

// Write runs BeforeWrite when set.
func (h Hooks[T]) Write(ctx context.Context, rec *T) error {
	if h.BeforeWrite == nil {
		return nil
	}
	return h.BeforeWrite(ctx, rec)
}

// Read runs AfterRead when set.
func (h Hooks[T]) Read(ctx context.Context, items []T) error {
	if h.AfterRead == nil || len(items) == 0 {
		return nil
	}
	return h.AfterRead(ctx, items)
}

// Import runs BeforeImport when set.
func (h Hooks[T]) Import(items []T) {
	if h.BeforeImport != nil {
		h.BeforeImport(items)
	}
}
