package helper

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"mockui/internal/config"
	"mockui/internal/mocks"
	"mockui/internal/repository"
	"mockui/internal/telemetry"
)

const (
	defaultMinDelay = 300 * time.Millisecond
	defaultSpread   = 1000 * time.Millisecond
)

// Service is the helper facade handed to the demo UI: simulated fetches, a
// diagnostic log and render intents, all recorded in one metadata store.
type Service struct {
	store     repository.MetaStore
	fixtures  mocks.Table
	scheduler Scheduler
	random    Random
	now       func() time.Time
	minDelay  time.Duration
	spread    time.Duration
	metrics   *telemetry.Metrics
	tracer    trace.Tracer
	log       *zap.Logger
	inflight  sync.WaitGroup
}

type Option func(*Service)

func WithScheduler(scheduler Scheduler) Option {
	return func(s *Service) { s.scheduler = scheduler }
}

func WithRandom(random Random) Option {
	return func(s *Service) { s.random = random }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDelay sets the completion delay to minDelay plus a uniform draw from
// [0, spread) at millisecond resolution.
func WithDelay(minDelay, spread time.Duration) Option {
	return func(s *Service) {
		s.minDelay = minDelay
		s.spread = spread
	}
}

func WithFixtures(table mocks.Table) Option {
	return func(s *Service) { s.fixtures = table }
}

func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

func New(store repository.MetaStore, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		fixtures:  mocks.Default(),
		scheduler: TimerScheduler{},
		random:    NewRandom(time.Now().UnixNano()),
		now:       time.Now,
		minDelay:  defaultMinDelay,
		spread:    defaultSpread,
		log:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewMetrics()
	}
	s.tracer = otel.Tracer("mockui/helper")
	return s
}

func NewService(cfg *config.Config, store repository.MetaStore, metrics *telemetry.Metrics, logger *zap.Logger) *Service {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("helper configured",
		zap.Duration("fetch_min_delay", cfg.FetchMinDelay),
		zap.Duration("fetch_delay_spread", cfg.FetchDelaySpread),
		zap.Bool("seeded", cfg.RandomSeed != 0),
	)
	return New(store, logger,
		WithMetrics(metrics),
		WithRandom(NewRandom(seed)),
		WithDelay(cfg.FetchMinDelay, cfg.FetchDelaySpread),
	)
}

// Meta exposes the store for subscribing to change:requests, change:logs and
// change:blueprint.
func (s *Service) Meta() repository.MetaStore {
	return s.store
}

// Drain blocks until every scheduled fetch has completed or ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
