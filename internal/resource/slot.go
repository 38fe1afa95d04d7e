package resource

import (
	"context"
	"sync"

	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/pkg/log"
)

// Slot is one place on screen that shows a resource. The last key loaded
// wins: results arriving for a key the slot has moved away from are dropped.
type Slot[T any] struct {
	res *Resource[T]

	// emitMu serialises state changes with their notifications so observers
	// never see an older key after a newer one.
	emitMu sync.Mutex

	mu        sync.Mutex
	key       query.Key
	state     State[T]
	observers []func(query.Key, State[T])
}

// NewSlot creates an empty slot over res.
func NewSlot[T any](res *Resource[T]) *Slot[T] {
	return &Slot[T]{
		res:   res,
		state: Loading[T](),
	}
}

// OnChange registers fn to receive every state the slot displays.
// Observers must not call Load.
func (s *Slot[T]) OnChange(fn func(query.Key, State[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
}

// Current returns the key the slot shows and its state.
func (s *Slot[T]) Current() (query.Key, State[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.key, s.state
}

// Load points the slot at key. An already-Ready key is shown immediately;
// otherwise the slot shows Loading until the fetch resolves. The returned
// channel receives the fetch result, whether or not it was displayed.
func (s *Slot[T]) Load(ctx context.Context, key query.Key, load Loader[T]) <-chan State[T] {
	done := make(chan State[T], 1)

	if st, ok := s.res.Peek(key); ok && st.IsReady() {
		cacheHits.WithLabelValues(s.res.kind).Inc()
		s.show(key, st)
		done <- st
		close(done)
		return done
	}

	s.show(key, Loading[T]())

	go func() {
		defer close(done)

		st := s.res.Fetch(ctx, key, load)
		if !s.apply(key, st) {
			staleDiscards.WithLabelValues(s.res.kind).Inc()
			l := log.Ctx(ctx)
			l.Debug().Str(log.FieldResource, s.res.kind).Str(log.FieldKey, string(key)).Msg("stale result discarded")
		}
		done <- st
	}()

	return done
}

// show moves the slot to key unconditionally.
func (s *Slot[T]) show(key query.Key, st State[T]) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.key = key
	s.state = st
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(key, st)
	}
}

// apply sets st only if the slot still shows key.
func (s *Slot[T]) apply(key query.Key, st State[T]) bool {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.key != key {
		s.mu.Unlock()
		return false
	}
	s.state = st
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(key, st)
	}
	return true
}
