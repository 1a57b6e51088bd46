package domain

import (
	"strconv"
	"sync"
	"time"
)

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock. A nil ClockFunc reads the wall clock.
type ClockFunc func() time.Time

// Now returns the function's result in UTC.
func (f ClockFunc) Now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f().UTC()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(nil)

// TimestampResolution is the precision every backend keeps.
const TimestampResolution = time.Microsecond

// Timestamp truncates t to TimestampResolution in UTC.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampResolution)
}

// IDGenerator mints `<letter><unix-millis>` ids. Values are monotonic per
// kind, so two creates within one millisecond still differ.
type IDGenerator struct {
	clock Clock
	mu    sync.Mutex
	last  map[Kind]int64
}

// NewIDGenerator returns a generator reading the given clock.
func NewIDGenerator(clock Clock) *IDGenerator {
	if clock == nil {
		clock = SystemClock
	}
	return &IDGenerator{clock: clock, last: make(map[Kind]int64)}
}

// Next returns a fresh id for kind.
func (g *IDGenerator) Next(kind Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.clock.Now().UnixMilli()
	if prev, ok := g.last[kind]; ok && n <= prev {
		n = prev + 1
	}
	g.last[kind] = n
	return kind.IDPrefix() + strconv.FormatInt(n, 10)
}
