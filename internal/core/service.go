package core

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"jamaah/internal/seed"
	"jamaah/pkg/domain"
)

// Service exposes the admin operations over one backend: per-kind CRUD,
// status transitions, statistics, search, and snapshots. Every operation
// makes sure demonstration data exists before touching the store.
type Service struct {
	store    domain.Store
	logger   Logger
	metrics  MetricsRecorder
	tracer   Tracer
	clock    domain.Clock
	validate *validator.Validate

	seedEnabled bool
	seedMu      sync.Mutex
	seeded      bool
}

// NewService constructs a service backed by store.
func NewService(store domain.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		logger:      noopLogger{},
		metrics:     noopMetrics{},
		tracer:      noopTracer{},
		clock:       domain.SystemClock,
		validate:    newValidator(),
		seedEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the backing store.
func (s *Service) Store() domain.Store { return s.store }

// Close releases the backing store.
func (s *Service) Close() error { return s.store.Close() }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Seed runs the seeder now and reports what it inserted.
func (s *Service) Seed(ctx context.Context) (seed.Report, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	report, err := seed.Run(ctx, s.store)
	if err != nil {
		return report, err
	}
	s.seeded = true
	return report, nil
}

// ensureSeeded seeds once per Service. Failures are logged and swallowed so
// the calling operation proceeds; the next call tries again.
func (s *Service) ensureSeeded(ctx context.Context) {
	if !s.seedEnabled {
		return
	}
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return
	}
	report, err := seed.Run(ctx, s.store)
	if err != nil {
		s.logger.Warn("seed failed", "driver", s.store.Driver(), "error", err)
		return
	}
	s.seeded = true
	if total := report.Total(); total > 0 {
		s.logger.Info("seeded demonstration data", "driver", s.store.Driver(), "records", total)
	}
}

// run wraps one operation with seeding, tracing, metrics, and logging.
func run[T any](ctx context.Context, s *Service, op string, fn func(context.Context) (T, error)) (result T, err error) {
	s.ensureSeeded(ctx)
	ctx, span := s.tracer.Start(ctx, op)
	started := time.Now()
	defer func() {
		elapsed := time.Since(started)
		span.End(err)
		s.metrics.Observe(ctx, op, err == nil, elapsed)
		switch {
		case err == nil:
			s.logger.Debug("operation completed", "operation", op, "duration", elapsed)
		case domain.IsNotFound(err), domain.IsValidation(err):
			s.logger.Info("operation rejected", "operation", op, "error", err)
		default:
			s.logger.Error("operation failed", "operation", op, "error", err)
		}
	}()
	return fn(ctx)
}

func (s *Service) check(kind domain.Kind, v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return domain.ValidationError{Kind: kind, Fields: fields}
}

// create validates rec and stores it.
func create[T any, P domain.Record[T]](ctx context.Context, s *Service, coll domain.Collection[T], rec T) (T, error) {
	if err := s.check(P(&rec).Kind(), &rec); err != nil {
		var zero T
		return zero, err
	}
	return coll.Create(ctx, rec)
}

// update validates the patch, merges it, and validates the merged record.
func update[T any, P domain.Record[T]](ctx context.Context, s *Service, coll domain.Collection[T], id string, patch any, apply func(*T)) (T, error) {
	var probe T
	kind := P(&probe).Kind()
	if err := s.check(kind, patch); err != nil {
		return probe, err
	}
	return coll.Update(ctx, id, func(rec *T) error {
		apply(rec)
		return s.check(kind, rec)
	})
}

// setter returns a mutator that only assigns a field.
func setter[T any](fn func(*T)) func(*T) error {
	return func(rec *T) error {
		fn(rec)
		return nil
	}
}
