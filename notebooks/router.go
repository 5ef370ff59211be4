package notebooks

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	notebook := router.Group("/notebook")
	notebook.Post("/", CreateNotebook)
	notebook.Get("/", ListNotebooks)
	notebook.Get("/sse", StreamNotebookStatus)
	notebook.Get("/metrics/:id", GetNotebookMetrics)
	notebook.Delete("/stop/:id", StopNotebook)
	notebook.Get("/:id", GetNotebook)
	notebook.Delete("/:id", DeleteNotebook)
}
