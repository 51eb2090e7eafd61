package trips_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fastplan/internal/repositories"
	"fastplan/internal/services"
)

var Module = fx.Provide(
	provideTripService, provideTripRepo, provideNoteRepo)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideNoteRepo(db *gorm.DB) repositories.NoteRepository {
	return repositories.NewNoteRepository(db)
}

func provideTripService(tripRepo repositories.TripRepository, noteRepo repositories.NoteRepository) services.TripServiceInterface {
	return services.NewTripService(tripRepo, noteRepo)
}
