package maps_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"meetspot/internal/services"
)

var Module = fx.Provide(
	provideGeocodingClient,
	provideDirectionsClient,
)

func mapsAPIKey() string {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}
	return key
}

func provideGeocodingClient() services.GeocodingServiceInterface {
	return services.NewGoogleGeocodingClient(mapsAPIKey(), os.Getenv("GOOGLE_GEOCODE_BASE_URL"))
}

func provideDirectionsClient() services.RoutingServiceInterface {
	return services.NewGoogleDirectionsClient(mapsAPIKey(), os.Getenv("GOOGLE_DIRECTIONS_BASE_URL"))
}
