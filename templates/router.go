package templates

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	template := router.Group("/template")
	template.Post("/", RegisterTemplate)
	template.Get("/", ListTemplates)
	template.Post("/submit/:name", SubmitTemplate)
	template.Get("/:name", GetTemplate)
	template.Patch("/:name", UpdateTemplate)
	template.Delete("/:name", DeleteTemplate)
}
