package destinations_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fastplan/internal/repositories"
	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

var Module = fx.Provide(
	provideDestinationService, provideDestinationRepo)

func provideDestinationRepo(db *gorm.DB) repositories.DestinationRepository {
	return repositories.NewDestinationRepository(db)
}

func provideDestinationService(destinationRepo repositories.DestinationRepository, planner utils.PlannerClientInterface) services.DestinationServiceInterface {
	return services.NewDestinationService(destinationRepo, planner)
}
