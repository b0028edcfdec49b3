package usecase

import (
	"context"
	"sync"
)

// broadcaster fans published values out to any number of subscribers.
// A new subscriber immediately receives the most recently published
// value, then every later publish, in publish order. Delivery is
// lossless: values queue per subscriber until consumed or the
// subscription context ends.
type broadcaster[T any] struct {
	mu      sync.Mutex
	current T
	primed  bool
	subs    map[int]*subscriber[T]
	next    int
}

type subscriber[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []T
	closed bool
}

func newBroadcaster[T any]() *broadcaster[T] {
	return &broadcaster[T]{subs: make(map[int]*subscriber[T])}
}

// publish records v as the current value and queues it for every
// active subscriber
func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	b.current = v
	b.primed = true
	for _, s := range b.subs {
		s.push(v)
	}
	b.mu.Unlock()
}

// subscribe returns a channel of values that is closed when ctx ends
func (b *broadcaster[T]) subscribe(ctx context.Context) <-chan T {
	s := &subscriber[T]{}
	s.cond = sync.NewCond(&s.mu)
	out := make(chan T)

	b.mu.Lock()
	if b.primed {
		s.queue = append(s.queue, b.current)
	}
	id := b.next
	b.next++
	b.subs[id] = s
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()

		s.mu.Lock()
		s.closed = true
		s.cond.Signal()
		s.mu.Unlock()
	}()

	go func() {
		defer close(out)
		for {
			s.mu.Lock()
			for len(s.queue) == 0 && !s.closed {
				s.cond.Wait()
			}
			if s.closed {
				s.mu.Unlock()
				return
			}
			v := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (s *subscriber[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.cond.Signal()
	s.mu.Unlock()
}
