package experiments

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	experiment := router.Group("/experiment")
	experiment.Post("/", CreateExperiment)
	experiment.Get("/", ListExperiments)
	experiment.Get("/sse", StreamExperimentStatus)
	experiment.Get("/logs", ListExperimentLogs)
	experiment.Get("/logs/:id", GetExperimentLogs)
	experiment.Get("/:id", GetExperiment)
	experiment.Patch("/:id", PatchExperiment)
	experiment.Delete("/:id", DeleteExperiment)
}
