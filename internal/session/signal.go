package session

import "sync"

// Signal is a replay-latest broadcast value.
//
// Set emits synchronously: every subscriber has observed the new value by
// the time Set returns. Subscribe delivers the current value immediately,
// then every later emission. Emissions happen even when the value is
// unchanged. Subscribers must not call Set from inside their callback.
type Signal[T any] struct {
	mu     sync.Mutex
	emitMu sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// NewSignal returns a Signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Value returns the latest value.
func (s *Signal[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies all subscribers before returning.
func (s *Signal[T]) Set(v T) {
	// emitMu serializes emissions so subscribers see values in Set order.
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.value = v
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn and calls it with the current value before
// returning. The returned function removes the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Signal[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
