package memcache_fx

import (
	"go.uber.org/fx"

	mem "fastplan/pkg/memcache"
)

var Module = fx.Provide(
	provideComposerStore, provideSlotGuard, provideTripLocker)

func provideComposerStore() mem.ComposerStore {
	return mem.NewComposers()
}

func provideSlotGuard() mem.SlotGuard {
	return mem.NewSlots()
}

func provideTripLocker() mem.TripLocker {
	return mem.NewTripLocks()
}
