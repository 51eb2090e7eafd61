package controllers_fx

import (
	"go.uber.org/fx"

	"fastplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewWizardController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewMutationController),
	fx.Provide(controllers.NewTripsController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewDestinationsController))
