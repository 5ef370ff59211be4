package serves

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"submarine-api/helper"
	"submarine-api/pkg/client/model"
	"submarine-api/registry"
)

// CreateServe brings a serving endpoint up for a registered model version.
func CreateServe(c *fiber.Ctx) error {
	var spec model.ServeSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing serve body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	created, err := getManager().Create(c.Context(), &spec)
	if err != nil {
		log.Error("failed to create serve endpoint: ", err)
		status := fiber.StatusBadRequest
		if errors.Is(err, registry.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return helper.SendResponse(c, err.Error(), nil, status)
	}

	return helper.SendResponse(c, "Serve endpoint created", created, fiber.StatusOK)
}

// DeleteServe tears a serving endpoint down.
func DeleteServe(c *fiber.Ctx) error {
	var spec model.ServeSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing serve body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	if err := getManager().Delete(c.Context(), &spec); err != nil {
		log.Error("failed to delete serve endpoint: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	return helper.SendResponse(c, "Serve endpoint deleted", nil, fiber.StatusOK)
}
