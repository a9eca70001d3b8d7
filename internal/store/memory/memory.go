package memory

import (
	"slices"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/model"
)

// Store keeps the three observable lists in memory. Every change is queued
// in mutation order and delivered by whichever writer is not already inside a
// delivery, so handlers may write back to the store.
type Store struct {
	mu sync.Mutex

	seq       uint64
	requests  []model.RequestRecord
	logs      []model.LogRecord
	blueprint []model.BlueprintRecord

	pending    []delivery
	delivering bool

	nextSub int
	subs    map[string][]subscriber
	log     *zap.Logger
}

type subscriber struct {
	id      int
	handler model.ChangeHandler
}

type delivery struct {
	change   model.Change
	handlers []model.ChangeHandler
}

func New(logger *zap.Logger) *Store {
	return &Store{
		subs: make(map[string][]subscriber, len(domain.Lists)),
		log:  logger,
	}
}

// Subscribe registers handler for change:<list>. Handlers run synchronously,
// in subscription order, before the mutating call returns. A handler that
// mutates the store sees its own change delivered after the current one has
// reached every subscriber. A write made while another goroutine is
// delivering is handed to that goroutine, still in mutation order.
func (s *Store) Subscribe(list string, handler model.ChangeHandler) (func(), error) {
	if !domain.IsValidList(list) {
		return nil, domain.ErrUnknownList
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[list] = append(s.subs[list], subscriber{id: id, handler: handler})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.subs[list] = slices.DeleteFunc(s.subs[list], func(sub subscriber) bool {
				return sub.id == id
			})
			s.mu.Unlock()
		})
	}, nil
}

// queueLocked records a change of list for delivery. Must be called with
// s.mu held.
func (s *Store) queueLocked(list string) {
	s.seq++
	s.pending = append(s.pending, delivery{
		change: model.Change{
			Seq:     s.seq,
			Event:   domain.ChangeEvent(list),
			List:    list,
			Records: s.snapshotLocked(list),
		},
		handlers: lo.Map(s.subs[list], func(sub subscriber, _ int) model.ChangeHandler {
			return sub.handler
		}),
	})
}

// flush delivers queued changes until none are left. Nested and concurrent
// calls return at once; the outermost flush picks up what they queued.
func (s *Store) flush() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending[0] = delivery{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, handler := range next.handlers {
			s.deliver(next.change, handler)
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store) deliver(c model.Change, handler model.ChangeHandler) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("change handler panicked", zap.String("event", c.Event), zap.Uint64("seq", c.Seq), zap.Any("panic", r))
		}
	}()
	handler(c)
}

func (s *Store) snapshotLocked(list string) any {
	switch list {
	case domain.ListRequests:
		return append(make([]model.RequestRecord, 0, len(s.requests)), s.requests...)
	case domain.ListLogs:
		return append(make([]model.LogRecord, 0, len(s.logs)), s.logs...)
	case domain.ListBlueprint:
		return append(make([]model.BlueprintRecord, 0, len(s.blueprint)), s.blueprint...)
	default:
		return nil
	}
}
