package submission_fx

import (
	"go.uber.org/fx"

	"fastplan/internal/repositories"
	"fastplan/internal/services"
	mem "fastplan/pkg/memcache"
	"fastplan/pkg/utils"
)

var Module = fx.Provide(
	provideSubmissionService)

func provideSubmissionService(
	sessionRepo repositories.SessionRepository,
	tripRepo repositories.TripRepository,
	planner utils.PlannerClientInterface,
	cache services.Cache,
	slots mem.SlotGuard,
) services.SubmissionServiceInterface {
	return services.NewSubmissionService(sessionRepo, tripRepo, planner, cache, slots)
}
