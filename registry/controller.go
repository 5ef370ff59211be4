package registry

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"submarine-api/helper"
	"submarine-api/pkg/client/model"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func parseVersion(raw string) (int32, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("version must be a positive integer")
	}
	return int32(n), nil
}

// CreateRegisteredModel registers a new model name.
func CreateRegisteredModel(c *fiber.Ctx) error {
	var entity model.RegisteredModelEntity
	if err := c.BodyParser(&entity); err != nil {
		log.Error("error parsing registered model body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	created, err := getStore().CreateModel(&entity)
	if err != nil {
		log.Error("failed to create registered model: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("registered model: ", created.Name)
	return helper.SendResponse(c, "Model registered", created, fiber.StatusOK)
}

func ListRegisteredModels(c *fiber.Ctx) error {
	models, err := getStore().ListModels()
	if err != nil {
		log.Error("failed to list registered models: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Registered model list", models, fiber.StatusOK)
}

func GetRegisteredModel(c *fiber.Ctx) error {
	name := c.Params("name")
	entity, err := getStore().GetModel(name)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Registered model", entity, fiber.StatusOK)
}

func UpdateRegisteredModel(c *fiber.Ctx) error {
	name := c.Params("name")

	var entity model.RegisteredModelEntity
	if err := c.BodyParser(&entity); err != nil {
		log.Error("error parsing registered model body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	updated, err := getStore().UpdateModel(name, &entity)
	if err != nil {
		log.Error("failed to update registered model: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Model updated", updated, fiber.StatusOK)
}

func DeleteRegisteredModel(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := getStore().DeleteModel(name); err != nil {
		log.Error("failed to delete registered model: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("deleted registered model: ", name)
	return helper.SendResponse(c, "Model deleted", nil, fiber.StatusOK)
}

// CreateModelTag adds a tag to a registered model, via query parameters.
func CreateModelTag(c *fiber.Ctx) error {
	entity, err := getStore().AddModelTag(c.Query("name"), c.Query("tag"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Tag added", entity, fiber.StatusOK)
}

func DeleteModelTag(c *fiber.Ctx) error {
	entity, err := getStore().DeleteModelTag(c.Query("name"), c.Query("tag"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Tag deleted", entity, fiber.StatusOK)
}

// CreateModelVersion appends a new version under a registered model.
func CreateModelVersion(c *fiber.Ctx) error {
	var entity model.ModelVersionEntity
	if err := c.BodyParser(&entity); err != nil {
		log.Error("error parsing model version body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	created, err := getStore().CreateVersion(&entity)
	if err != nil {
		log.Error("failed to create model version: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Infof("created model version %s/%d", created.Name, created.Version)
	return helper.SendResponse(c, "Model version created", created, fiber.StatusOK)
}

func ListModelVersions(c *fiber.Ctx) error {
	name := c.Params("name")
	versions, err := getStore().ListVersions(name)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Model version list", versions, fiber.StatusOK)
}

func GetModelVersion(c *fiber.Ctx) error {
	name := c.Params("name")
	version, err := parseVersion(c.Params("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	entity, err := getStore().GetVersion(name, version)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Model version", entity, fiber.StatusOK)
}

// PatchModelVersion updates stage, dataset or description of a version
// identified by the body's name and version fields.
func PatchModelVersion(c *fiber.Ctx) error {
	var entity model.ModelVersionEntity
	if err := c.BodyParser(&entity); err != nil {
		log.Error("error parsing model version body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	updated, err := getStore().UpdateVersion(&entity)
	if err != nil {
		log.Error("failed to patch model version: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Model version updated", updated, fiber.StatusOK)
}

func DeleteModelVersion(c *fiber.Ctx) error {
	name := c.Params("name")
	version, err := parseVersion(c.Params("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	if err := getStore().DeleteVersion(name, version); err != nil {
		log.Error("failed to delete model version: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Model version deleted", nil, fiber.StatusOK)
}

// CreateVersionTag adds a tag to one model version, via query parameters.
func CreateVersionTag(c *fiber.Ctx) error {
	version, err := parseVersion(c.Query("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	entity, err := getStore().AddVersionTag(c.Query("name"), version, c.Query("tag"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Tag added", entity, fiber.StatusOK)
}

func DeleteVersionTag(c *fiber.Ctx) error {
	version, err := parseVersion(c.Query("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	entity, err := getStore().DeleteVersionTag(c.Query("name"), version, c.Query("tag"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Tag deleted", entity, fiber.StatusOK)
}

// ListVersionArtifacts walks the artifact tree of one version.
func ListVersionArtifacts(c *fiber.Ctx) error {
	name := c.Params("name")
	version, err := parseVersion(c.Params("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	entries, err := getStore().ListArtifacts(name, version)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Artifact list", entries, fiber.StatusOK)
}

// PreviewVersionArtifact returns the content of one artifact file.
func PreviewVersionArtifact(c *fiber.Ctx) error {
	name := c.Params("name")
	version, err := parseVersion(c.Params("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	file := c.Query("file")
	if file == "" {
		return helper.SendResponse(c, "file query parameter is required", nil, fiber.StatusBadRequest)
	}

	data, err := getStore().ReadArtifact(name, version, file)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Artifact content", string(data), fiber.StatusOK)
}

type importRequest struct {
	URL string `json:"url"`
}

// ImportVersionArtifacts fetches a zip archive into the artifact tree.
func ImportVersionArtifacts(c *fiber.Ctx) error {
	name := c.Params("name")
	version, err := parseVersion(c.Params("version"))
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	var req importRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return helper.SendResponse(c, "archive url is required", nil, fiber.StatusBadRequest)
	}

	extracted, err := getStore().ImportArtifacts(c.Context(), name, version, req.URL)
	if err != nil {
		log.Error("failed to import artifacts: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Infof("imported %d artifacts into %s/%d", len(extracted), name, version)
	return helper.SendResponse(c, "Artifacts imported", extracted, fiber.StatusOK)
}
