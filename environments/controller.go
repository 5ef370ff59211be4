package environments

import (
	"errors"

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

// CreateEnvironment registers a new environment spec.
func CreateEnvironment(c *fiber.Ctx) error {
	var spec model.EnvironmentSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing environment body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	if err := getStore().Create(&spec); err != nil {
		log.Error("failed to create environment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("created environment: ", spec.Name)
	return helper.SendResponse(c, "Environment created", &spec, fiber.StatusOK)
}

// UpdateEnvironment replaces an existing environment spec.
func UpdateEnvironment(c *fiber.Ctx) error {
	name := c.Params("name")

	var spec model.EnvironmentSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing environment body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	updated, err := getStore().Update(name, &spec)
	if err != nil {
		log.Error("failed to update environment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Environment updated", updated, fiber.StatusOK)
}

func ListEnvironments(c *fiber.Ctx) error {
	specs, err := getStore().List()
	if err != nil {
		log.Error("failed to list environments: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Environment list", specs, fiber.StatusOK)
}

func GetEnvironment(c *fiber.Ctx) error {
	name := c.Params("name")
	spec, err := getStore().Get(name)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Environment", spec, fiber.StatusOK)
}

func DeleteEnvironment(c *fiber.Ctx) error {
	name := c.Params("name")
	spec, err := getStore().Delete(name)
	if err != nil {
		log.Error("failed to delete environment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("deleted environment: ", name)
	return helper.SendResponse(c, "Environment deleted", spec, fiber.StatusOK)
}
