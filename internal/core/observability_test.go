package core

import (
	"bytes"
	"context"
	"expvar"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"jamaah/pkg/domain"
)

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type captureLogger struct {
	lines []string
}

func (c *captureLogger) log(level, msg string, args []any) {
	var b strings.Builder
	b.WriteString(level + " " + msg)
	for _, a := range args {
		if s, ok := a.(string); ok {
			b.WriteString(" " + s)
		}
	}
	c.lines = append(c.lines, b.String())
}

func (c *captureLogger) Debug(msg string, args ...any) { c.log("DEBUG", msg, args) }
func (c *captureLogger) Info(msg string, args ...any)  { c.log("INFO", msg, args) }
func (c *captureLogger) Warn(msg string, args ...any)  { c.log("WARN", msg, args) }
func (c *captureLogger) Error(msg string, args ...any) { c.log("ERROR", msg, args) }

func (c *captureLogger) contains(substr string) bool {
	for _, l := range c.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestServiceRecordsMetricsTracesAndLogs(t *testing.T) {
	ctx := context.Background()
	metrics := &captureMetricsRecorder{}
	var traceBuf bytes.Buffer
	tracer := NewSpanLog(&traceBuf)
	logger := &captureLogger{}
	svc := newTestService(t, WithMetricsRecorder(metrics), WithTracer(tracer), WithLogger(logger))

	if _, err := svc.ListMembers(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.GetMember(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if !metrics.has("members.list", true) || !metrics.has("members.get", false) {
		t.Fatalf("unexpected metrics %+v", metrics.calls)
	}
	spans := tracer.Spans()
	if len(spans) != 2 || spans[1].Status != "error" || spans[1].ID == "" || spans[1].Error == "" {
		t.Fatalf("unexpected spans %+v", spans)
	}
	if strings.Count(traceBuf.String(), "\n") != 2 || !strings.Contains(traceBuf.String(), `"operation":"members.get"`) {
		t.Fatalf("unexpected trace output %q", traceBuf.String())
	}
	if !logger.contains("INFO seeded demonstration data") {
		t.Fatalf("expected seed log, got %v", logger.lines)
	}
	if !logger.contains("INFO operation rejected operation members.get") {
		t.Fatalf("expected rejection log, got %v", logger.lines)
	}
}

func TestExpvarRecorder(t *testing.T) {
	rec := NewExpvarRecorder("")
	rec.Observe(context.Background(), "articles.toggle", true, 2*time.Millisecond)
	rec.Observe(context.Background(), "articles.toggle", false, time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond)

	if v, ok := rec.Vars().Get("articles.toggle.success").(*expvar.Int); !ok || v.Value() != 1 {
		t.Fatalf("unexpected success counter %v", rec.Vars().Get("articles.toggle.success"))
	}
	if v, ok := rec.Vars().Get("articles.toggle.error").(*expvar.Int); !ok || v.Value() != 1 {
		t.Fatalf("unexpected error counter %v", rec.Vars().Get("articles.toggle.error"))
	}
	if v, ok := rec.Vars().Get("articles.toggle.duration_ms").(*expvar.Float); !ok || v.Value() != 3 {
		t.Fatalf("unexpected duration %v", rec.Vars().Get("articles.toggle.duration_ms"))
	}
	if rec.Vars().Get(".success") != nil {
		t.Fatalf("blank operations must be ignored")
	}
	if expvar.Get(rec.Name()) == nil {
		t.Fatalf("recorder not published under %s", rec.Name())
	}
	if other := NewExpvarRecorder(""); other.Name() == rec.Name() {
		t.Fatalf("generated names must be unique")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := newTestService(t, WithMetricsRecorder(MultiMetricsRecorder{rec, nil}))
	if _, err := svc.ApproveMember(context.Background(), "m1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.ApproveMember(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error")
	}
	if got := testutil.ToFloat64(rec.total.WithLabelValues("members.approve", "success")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(rec.total.WithLabelValues("members.approve", "error")); got != 1 {
		t.Fatalf("error count = %v", got)
	}
	if n := testutil.CollectAndCount(rec.duration); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}
