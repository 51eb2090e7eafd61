// pkg/mem/triplocks.go
package mem

import "sync"

// TripLocker serializes the read-merge-write cycle on one plan document.
// Slots keep duplicate requests for the same coordinate out; the trip lock
// keeps concurrent merges on different coordinates of the same trip from
// overwriting each other's write. Different trips never contend.
type TripLocker interface {
	Lock(tripID string)
	Unlock(tripID string)
}

type tripLock struct {
	mu   sync.Mutex
	refs int
}

type TripLocks struct {
	mu    sync.Mutex
	locks map[string]*tripLock
}

func NewTripLocks() *TripLocks {
	return &TripLocks{
		locks: make(map[string]*tripLock),
	}
}

func (t *TripLocks) Lock(tripID string) {
	t.mu.Lock()
	l, ok := t.locks[tripID]
	if !ok {
		l = &tripLock{}
		t.locks[tripID] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the per-trip mutex and drops the entry once the last
// holder is gone, so the map does not grow with every trip ever touched.
func (t *TripLocks) Unlock(tripID string) {
	t.mu.Lock()
	l, ok := t.locks[tripID]
	if ok {
		l.refs--
		if l.refs == 0 {
			delete(t.locks, tripID)
		}
	}
	t.mu.Unlock()

	if ok {
		l.mu.Unlock()
	}
}
