package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an id does not match an existing record.
type ErrNotFound struct {
	Kind Kind
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err carries an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// ErrStorage is matched by every StorageError via errors.Is.
var ErrStorage = errors.New("storage failure")

// StorageError wraps a failure of the backing medium (connection, I/O,
// malformed data). It is never retried internally.
type StorageError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StorageError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is matches ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// StorageFailure wraps err as a StorageError unless it is nil, already a
// StorageError, or an ErrNotFound.
func StorageFailure(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) || IsNotFound(err) {
		return err
	}
	return &StorageError{Op: op, Kind: kind, Err: err}
}

// IsStorageFailure reports whether err originates from the backing medium.
func IsStorageFailure(err error) bool { return errors.Is(err, ErrStorage) }

// ValidationError lists offending fields (field name to failed rule).
type ValidationError struct {
	Kind   Kind
	Fields map[string]string
}

func (e ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name, rule := range e.Fields {
		names = append(names, name+"="+rule)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(names, ", "))
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
