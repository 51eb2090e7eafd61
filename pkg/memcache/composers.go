// pkg/mem/composers.go
package mem

import (
	"fmt"
	"sync"
	"time"
)

// ComposerStore tracks the transient inline composers open against itinerary
// coordinates. An entry exists from open until close, outside-click or a
// successful suggestion; a failed suggestion keeps the entry (and the typed
// text) so the user can edit and retry. Entries expire after a TTL so an
// abandoned tab cannot pin memory forever.
type ComposerStore interface {
	// Open registers (or refreshes) a composer with the user's typed text.
	Open(tripID string, dayIndex, activityIndex int, text string, ttl time.Duration)

	// Get returns the typed text for an open composer.
	Get(tripID string, dayIndex, activityIndex int) (string, bool)

	// Close discards the composer. Closing an unknown composer is a no-op;
	// a late response must tolerate its anchor being gone.
	Close(tripID string, dayIndex, activityIndex int)
}

type composerEntry struct {
	text      string
	expiresAt time.Time
}

type Composers struct {
	mu   sync.RWMutex
	data map[string]composerEntry
}

func NewComposers() *Composers {
	return &Composers{
		data: make(map[string]composerEntry),
	}
}

func composerKey(tripID string, dayIndex, activityIndex int) string {
	return fmt.Sprintf("%s:%d:%d", tripID, dayIndex, activityIndex)
}

func (s *Composers) Open(tripID string, dayIndex, activityIndex int, text string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[composerKey(tripID, dayIndex, activityIndex)] = composerEntry{
		text:      text,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *Composers) Get(tripID string, dayIndex, activityIndex int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[composerKey(tripID, dayIndex, activityIndex)]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.text, true
}

func (s *Composers) Close(tripID string, dayIndex, activityIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, composerKey(tripID, dayIndex, activityIndex))
}
