package internal

import (
	"net/http"

	"bgmix/internal/controllers"
	"bgmix/internal/providers"
	"bgmix/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, sessionController *controllers.SessionController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/collections", http.HandlerFunc(apiController.GetCollections))
	routers.Post("/sessions", http.HandlerFunc(sessionController.Create))
	routers.Get("/session", http.HandlerFunc(sessionController.Get))
	return routers
}
