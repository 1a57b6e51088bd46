package core

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Span is one finished service operation as written by SpanLog.
type Span struct {
	ID        string    `json:"span_id"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Started   time.Time `json:"started_at"`
	ElapsedMS float64   `json:"elapsed_ms"`
}

// SpanLog is a Tracer that appends one JSON line per operation to w and
// keeps the spans in memory. The CLI enables it at debug level.
type SpanLog struct {
	mu    sync.Mutex
	w     io.Writer
	spans []Span
}

// NewSpanLog returns a SpanLog writing to w; a nil w only keeps spans.
func NewSpanLog(w io.Writer) *SpanLog { return &SpanLog{w: w} }

// Spans returns the finished spans in completion order.
func (l *SpanLog) Spans() []Span {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Span(nil), l.spans...)
}

// Start implements Tracer.
func (l *SpanLog) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &openSpan{log: l, span: Span{ID: uuid.NewString(), Operation: operation, Started: time.Now().UTC()}}
}

type openSpan struct {
	log  *SpanLog
	span Span
}

func (o *openSpan) End(err error) {
	sp := o.span
	sp.ElapsedMS = float64(time.Since(sp.Started)) / float64(time.Millisecond)
	sp.Status = statusLabel(err == nil)
	if err != nil {
		sp.Error = err.Error()
	}
	o.log.mu.Lock()
	defer o.log.mu.Unlock()
	o.log.spans = append(o.log.spans, sp)
	if o.log.w == nil {
		return
	}
	if line, mErr := sonic.Marshal(sp); mErr == nil {
		_, _ = o.log.w.Write(append(line, '\n'))
	}
}
