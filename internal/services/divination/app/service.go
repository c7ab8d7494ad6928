package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/koriyoshi2041/zhouyi/internal/platform/assets/catalog"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	"github.com/koriyoshi2041/zhouyi/internal/random"
)

const tracerName = "github.com/koriyoshi2041/zhouyi/internal/services/divination/app"

// Service runs readings against the embedded hexagram catalog.
type Service struct {
	now      func() time.Time
	seeds    random.Generator
	catalog  *catalog.Catalog
	logger   *zap.Logger
	tracer   trace.Tracer
	location *time.Location
	workers  int
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock used when a request carries no time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSeedGenerator replaces crypto/rand seed generation.
func WithSeedGenerator(generate random.Generator) Option {
	return func(s *Service) { s.seeds = generate }
}

// WithCatalog serves readings from c instead of the embedded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithLogger attaches a logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracer attaches a tracer. The default comes from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithLocation sets the time zone that decides calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithWorkers bounds the goroutines used by Probability.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// WithIDGenerator replaces uuid reading ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New builds a Service. Without WithCatalog the embedded catalog is loaded
// and validated.
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.seeds == nil {
		s.seeds = random.NewSeed
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.catalog == nil {
		c, err := catalog.Embedded()
		if err != nil {
			return nil, platformerrors.Wrap(platformerrors.CodeCatalogInvalid, "load embedded catalog", err)
		}
		s.catalog = c
	}
	return s, nil
}

// Catalog returns the catalog backing the service.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Location returns the time zone that decides calendar days.
func (s *Service) Location() *time.Location {
	return s.location
}

func (s *Service) resolveTime(at *time.Time) time.Time {
	if at == nil || at.IsZero() {
		return s.now().In(s.location)
	}
	return at.In(s.location)
}

// fail records err on span and returns it classified.
func (s *Service) fail(span trace.Span, op string, err error) error {
	classified := Classify(err)
	span.RecordError(classified)
	span.SetStatus(codes.Error, op)
	code := platformerrors.GetCode(classified)
	if code.UserError() {
		s.logger.Debug(op+" rejected", zap.String("code", string(code)), zap.Error(err))
	} else {
		s.logger.Error(op+" failed", zap.String("code", string(code)), zap.Error(err))
	}
	return classified
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request cancelled: %w", err)
	}
	return nil
}
