package meetup_fx

import (
	"go.uber.org/fx"

	"meetspot/internal/api/controllers"
	"meetspot/internal/services"
	mem "meetspot/pkg/memcache"
	"meetspot/pkg/utils"
)

var Module = fx.Provide(
	ProvideRecommendationService,
	ProvideTravelService,
	ProvideMeetupService,
	ProvideMeetupController,
)

func ProvideRecommendationService(completion utils.CompletionClientInterface) services.RecommendationServiceInterface {
	return services.NewRecommendationService(completion)
}

func ProvideTravelService(routing services.RoutingServiceInterface) services.TravelServiceInterface {
	return services.NewTravelService(routing)
}

func ProvideMeetupService(
	geocoder services.GeocodingServiceInterface,
	recommender services.RecommendationServiceInterface,
	travel services.TravelServiceInterface,
	sessions mem.SessionStore,
) services.MeetupServiceInterface {
	return services.NewMeetupService(geocoder, recommender, travel, sessions)
}

func ProvideMeetupController(meetupService services.MeetupServiceInterface) *controllers.MeetupController {
	return controllers.NewMeetupController(meetupService)
}
