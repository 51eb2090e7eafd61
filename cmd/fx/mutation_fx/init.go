package mutation_fx

import (
	"go.uber.org/fx"

	"fastplan/internal/repositories"
	"fastplan/internal/services"
	mem "fastplan/pkg/memcache"
	"fastplan/pkg/utils"
)

var Module = fx.Provide(
	provideMutationService)

func provideMutationService(
	tripRepo repositories.TripRepository,
	planner utils.PlannerClientInterface,
	composers mem.ComposerStore,
	slots mem.SlotGuard,
	locks mem.TripLocker,
	cache services.Cache,
) services.MutationServiceInterface {
	return services.NewMutationService(tripRepo, planner, composers, slots, locks, cache)
}
