package registry

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(router fiber.Router) {
	rm := router.Group("/registered-model")
	rm.Post("/", CreateRegisteredModel)
	rm.Get("/", ListRegisteredModels)
	rm.Post("/tag", CreateModelTag)
	rm.Delete("/tag", DeleteModelTag)
	rm.Get("/:name", GetRegisteredModel)
	rm.Patch("/:name", UpdateRegisteredModel)
	rm.Delete("/:name", DeleteRegisteredModel)

	mv := router.Group("/model-version")
	mv.Post("/", CreateModelVersion)
	mv.Patch("/", PatchModelVersion)
	mv.Post("/tag", CreateVersionTag)
	mv.Delete("/tag", DeleteVersionTag)
	mv.Get("/artifacts/:name/:version", ListVersionArtifacts)
	mv.Get("/artifacts/:name/:version/preview", PreviewVersionArtifact)
	mv.Post("/artifacts/:name/:version", ImportVersionArtifacts)
	mv.Get("/:name", ListModelVersions)
	mv.Get("/:name/:version", GetModelVersion)
	mv.Delete("/:name/:version", DeleteModelVersion)
}
