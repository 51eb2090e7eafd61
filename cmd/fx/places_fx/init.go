package places_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"googlemaps.github.io/maps"

	"fastplan/internal/services"
)

var Module = fx.Provide(
	providePlacesService)

// providePlacesService builds the place lookup service. A missing API key
// disables lookups instead of failing startup; every lookup then misses.
func providePlacesService(cache services.Cache) services.PlacesServiceInterface {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY not set, place lookups disabled")
		return services.NewPlacesService(nil, "", cache)
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("maps client init failed, place lookups disabled: %v", err)
		return services.NewPlacesService(nil, "", cache)
	}
	return services.NewPlacesService(client, apiKey, cache)
}
