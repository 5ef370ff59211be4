package router

import (
	"github.com/gofiber/fiber/v2"

	"submarine-api/environments"
	"submarine-api/experiments"
	"submarine-api/notebooks"
	"submarine-api/registry"
	"submarine-api/serves"
	"submarine-api/templates"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Get("/cluster/resources", GetClusterResources)
	api.Get("/cluster/totalresources", GetTotalResources)
	api.Get("/health/check", CheckHealth)
	environments.SetupRoutes(api)
	experiments.SetupRoutes(api)
	templates.SetupRoutes(api)
	notebooks.SetupRoutes(api)
	registry.SetupRoutes(api)
	serves.SetupRoutes(api)
}
