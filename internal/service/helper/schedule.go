package helper

import (
	"math/rand"
	"sync"
	"time"
)

// Scheduler runs fn once after d. Fetch completions are its only users.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Random is the subset of *rand.Rand the helper draws from. Implementations
// must be safe for concurrent use.
type Random interface {
	Float64() float64
	Int63n(n int64) int64
}

type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandom(seed int64) Random {
	return &lockedRandom{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) Int63n(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Int63n(n)
}
