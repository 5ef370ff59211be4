package environments

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	environment := router.Group("/environment")
	environment.Post("/", CreateEnvironment)
	environment.Get("/", ListEnvironments)
	environment.Get("/:name", GetEnvironment)
	environment.Patch("/:name", UpdateEnvironment)
	environment.Delete("/:name", DeleteEnvironment)
}
