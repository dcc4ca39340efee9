package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/plantcare/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Plant   *apiHandler.PlantHandler
	Care    *apiHandler.CareHandler
	Reading *apiHandler.ReadingHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Plants
	r.GET("/api/v1/plants", authMiddleware(handlers.Plant.GetPlants))
	r.POST("/api/v1/plants", authMiddleware(handlers.Plant.CreatePlant))
	r.GET("/api/v1/plants/{id}", authMiddleware(handlers.Plant.GetPlant))
	r.PUT("/api/v1/plants/{id}", authMiddleware(handlers.Plant.UpdatePlant))
	r.DELETE("/api/v1/plants/{id}", authMiddleware(handlers.Plant.DeletePlant))

	// Care engine: generation on read, reconciliation on action
	r.GET("/api/v1/plants/{id}/tasks", authMiddleware(handlers.Care.GetPlantTasks))
	r.POST("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Care.CompleteTask))
	r.POST("/api/v1/tasks/{id}/skip", authMiddleware(handlers.Care.SkipTask))
	r.POST("/api/v1/tasks/{id}/reschedule", authMiddleware(handlers.Care.RescheduleTask))
	r.GET("/api/v1/history", authMiddleware(handlers.Care.GetHistory))

	// Environment readings
	r.POST("/api/v1/plants/{id}/readings", authMiddleware(handlers.Reading.RecordReading))
	r.GET("/api/v1/plants/{id}/readings", authMiddleware(handlers.Reading.GetReadings))

	return r
}
