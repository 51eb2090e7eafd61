package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"fastplan/cmd/fx/account_fx"
	"fastplan/cmd/fx/cache_fx"
	"fastplan/cmd/fx/controllers_fx"
	"fastplan/cmd/fx/db_fx"
	"fastplan/cmd/fx/destinations_fx"
	"fastplan/cmd/fx/memcache_fx"
	"fastplan/cmd/fx/mutation_fx"
	"fastplan/cmd/fx/places_fx"
	"fastplan/cmd/fx/planner_fx"
	"fastplan/cmd/fx/submission_fx"
	"fastplan/cmd/fx/trips_fx"
	"fastplan/cmd/fx/wizard_fx"
	"fastplan/internal/api/controllers"
	"fastplan/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		memcache_fx.Module,
		planner_fx.Module,
		account_fx.Module,
		wizard_fx.Module,
		trips_fx.Module,
		submission_fx.Module,
		mutation_fx.Module,
		places_fx.Module,
		destinations_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	wizardController *controllers.WizardController,
	planController *controllers.PlanController,
	mutationController *controllers.MutationController,
	tripsController *controllers.TripsController,
	placesController *controllers.PlacesController,
	destinationsController *controllers.DestinationsController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		wizardController,
		planController,
		mutationController,
		tripsController,
		placesController,
		destinationsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	wizardController *controllers.WizardController,
	planController *controllers.PlanController,
	mutationController *controllers.MutationController,
	tripsController *controllers.TripsController,
	placesController *controllers.PlacesController,
	destinationsController *controllers.DestinationsController) {

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)
	accountsGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	destinationsGroup := r.Group("/destinations")
	destinationsGroup.GET("/suggest", destinationsController.Suggest)

	placesGroup := r.Group("/places")
	placesGroup.GET("/details", placesController.Lookup)

	// Result views are shareable by trip id; everything that writes sits
	// behind the JWT middleware.
	r.GET("/trips/:trip_id", tripsController.GetTrip)
	r.GET("/wizard/options", wizardController.Options)

	wizardGroup := r.Group("/wizard")
	wizardGroup.Use(middleware.JWTAuthMiddleware())
	wizardGroup.POST("/start", wizardController.StartSession)
	wizardGroup.GET("/session/:session_id", wizardController.Resume)
	wizardGroup.DELETE("/session/:session_id", wizardController.Abandon)
	wizardGroup.POST("/update", wizardController.UpdateField)
	wizardGroup.POST("/next", wizardController.Advance)
	wizardGroup.POST("/back", wizardController.Retreat)

	plansGroup := r.Group("/plans")
	plansGroup.Use(middleware.JWTAuthMiddleware())
	plansGroup.POST("/submit", planController.Submit)

	tripsGroup := r.Group("/trips")
	tripsGroup.Use(middleware.JWTAuthMiddleware())
	tripsGroup.GET("", tripsController.ListTrips)
	tripsGroup.DELETE("/:trip_id", tripsController.DeleteTrip)
	tripsGroup.POST("/notes", tripsController.SaveNote)
	tripsGroup.GET("/:trip_id/notes", tripsController.ListNotes)
	tripsGroup.POST("/replace-activity", mutationController.SuggestAlternative)
	tripsGroup.POST("/add-activity", mutationController.AddActivity)
	tripsGroup.POST("/open-composer", mutationController.OpenComposer)
	tripsGroup.POST("/close-composer", mutationController.CloseComposer)
}
