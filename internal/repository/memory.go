package repository

import (
	"context"
	"sync"
	"time"

	"estudio/internal/domain"
)

// MemoryEventStream is an in-process fan-out used when Redis is disabled and
// as the failover target when it is down. Slow subscribers drop events
// rather than block the publisher.
type MemoryEventStream struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan domain.StreamEvent
	next int
}

func NewMemoryEventStream() *MemoryEventStream {
	return &MemoryEventStream{
		subs: make(map[string]map[int]chan domain.StreamEvent),
	}
}

func (s *MemoryEventStream) Publish(ctx context.Context, topic string, payload []byte) error {
	event := domain.StreamEvent{
		Topic:     topic,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs[topic] {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop.
		}
	}
	return nil
}

func (s *MemoryEventStream) Subscribe(ctx context.Context, topic string) (<-chan domain.StreamEvent, func(), error) {
	ch := make(chan domain.StreamEvent, 16)

	s.mu.Lock()
	if s.subs[topic] == nil {
		s.subs[topic] = make(map[int]chan domain.StreamEvent)
	}
	id := s.next
	s.next++
	s.subs[topic][id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[topic], id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
