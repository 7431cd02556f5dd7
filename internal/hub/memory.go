package hub

import (
	"sync"

	"progressd/pkg/types"
)

// MemorySubscriber stores pushed events in-memory for tests.
type MemorySubscriber struct {
	mu     sync.Mutex
	events []types.ProgressEvent
}

func NewMemorySubscriber() *MemorySubscriber { return &MemorySubscriber{} }

func (s *MemorySubscriber) Push(ev types.ProgressEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *MemorySubscriber) Events() []types.ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ProgressEvent, len(s.events))
	copy(out, s.events)
	return out
}
