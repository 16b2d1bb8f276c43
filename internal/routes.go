package internal

import (
	"cookingapp/internal/controllers"
	"cookingapp/internal/providers"
	"net/http"
)

func InitRoutes(stateController *controllers.StateController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/state", http.HandlerFunc(stateController.GetState))
	routers.Post("/fetch", http.HandlerFunc(stateController.Fetch))
	routers.Post("/select", http.HandlerFunc(stateController.Select))
	routers.Post("/reschedule", http.HandlerFunc(stateController.Reschedule))
	routers.Post("/dismiss", http.HandlerFunc(stateController.Dismiss))
	routers.Delete("/schedule", http.HandlerFunc(stateController.ClearSchedule))
	routers.Post("/intent/", http.HandlerFunc(stateController.Intent))
	return routers
}
