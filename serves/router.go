package serves

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	serve := router.Group("/serve")
	serve.Post("/", CreateServe)
	serve.Delete("/", DeleteServe)
}
