// pkg/mem/slots.go
package mem

import (
	"fmt"
	"sync"
)

// SlotGuard serializes in-flight work per key. The mutation engine keys slots
// by (trip, day, activity): a second request for the same coordinate while one
// is pending is refused before any network call, while different coordinates
// proceed independently.
type SlotGuard interface {
	// Acquire claims the slot, reporting false if it is already held.
	Acquire(key string) bool

	// Release frees the slot. Releasing an unheld slot is a no-op.
	Release(key string)
}

type Slots struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewSlots() *Slots {
	return &Slots{
		pending: make(map[string]struct{}),
	}
}

func SlotKey(tripID string, dayIndex, activityIndex int) string {
	return fmt.Sprintf("%s:%d:%d", tripID, dayIndex, activityIndex)
}

// AddSlotKey guards addition requests, which target a day rather than an
// existing coordinate. It can never collide with a replacement slot.
func AddSlotKey(tripID string, dayIndex int) string {
	return fmt.Sprintf("%s:%d:add", tripID, dayIndex)
}

func (s *Slots) Acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.pending[key]; held {
		return false
	}
	s.pending[key] = struct{}{}
	return true
}

func (s *Slots) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}
