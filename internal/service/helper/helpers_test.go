package helper

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"mockui/internal/store/memory"
	"mockui/internal/telemetry"
)

type scheduledCall struct {
	delay time.Duration
	fn    func()
}

// manualScheduler holds completions until the test fires them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []scheduledCall
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, scheduledCall{delay: d, fn: fn})
}

func (m *manualScheduler) delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.pending))
	for _, c := range m.pending {
		out = append(out, c.delay)
	}
	return out
}

func (m *manualScheduler) runAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, c := range pending {
		c.fn()
	}
}

// fixedRandom returns the same draw every time; Int63n is clamped to n-1.
type fixedRandom struct {
	draw   float64
	offset int64
}

func (f fixedRandom) Float64() float64 { return f.draw }

func (f fixedRandom) Int63n(n int64) int64 {
	if f.offset >= n {
		return n - 1
	}
	return f.offset
}

// stepClock advances one second per reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	svc       *Service
	store     *memory.Store
	scheduler *manualScheduler
	metrics   *telemetry.Metrics
}

func newFixture(random Random, opts ...Option) fixture {
	store := memory.New(zap.NewNop())
	scheduler := &manualScheduler{}
	metrics := telemetry.NewMetrics()
	base := []Option{
		WithScheduler(scheduler),
		WithRandom(random),
		WithClock(newStepClock().Now),
		WithMetrics(metrics),
	}
	svc := New(store, zap.NewNop(), append(base, opts...)...)
	return fixture{svc: svc, store: store, scheduler: scheduler, metrics: metrics}
}

type fetchResult struct {
	payload any
	err     error
	calls   int
}

func (r *fetchResult) callback() Callback {
	return func(payload any, err error) {
		r.payload = payload
		r.err = err
		r.calls++
	}
}
