package wizard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fastplan/internal/repositories"
	"fastplan/internal/services"
)

var Module = fx.Provide(
	provideWizardService, provideSessionRepo, provideAccessGuard)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideAccessGuard() services.AccessGuard {
	return services.NewTokenAccessGuard()
}

func provideWizardService(sessionRepo repositories.SessionRepository, guard services.AccessGuard) services.WizardServiceInterface {
	return services.NewWizardService(sessionRepo, guard)
}
