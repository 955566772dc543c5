package internal

import (
	"net/http"
	"paywall/internal/controllers"
	"paywall/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/offer", http.HandlerFunc(apiController.GetOffer))
	routers.Post("/offer/shown", http.HandlerFunc(apiController.OfferShown))
	routers.Post("/purchase", http.HandlerFunc(apiController.Purchase))
	routers.Post("/track", http.HandlerFunc(apiController.Track))
	routers.Post("/session", http.HandlerFunc(apiController.Session))
	routers.Get("/insight", http.HandlerFunc(apiController.Insight))
	routers.Get("/preferences", http.HandlerFunc(apiController.GetPreferences))
	routers.Patch("/preferences", http.HandlerFunc(apiController.PatchPreferences))
	routers.Get("/premium", http.HandlerFunc(apiController.Premium))
	routers.Post("/guard/enter", http.HandlerFunc(apiController.GuardEnter))
	routers.Post("/guard/release", http.HandlerFunc(apiController.GuardRelease))
	return routers
}
