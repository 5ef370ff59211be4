package router

import (
	"github.com/gofiber/fiber/v2"

	"submarine-api/helper"
	"submarine-api/kubeutils"
)

var kc = kubeutils.NewKubernetesConfig()

// GetClusterResources reports per-node remaining capacity.
func GetClusterResources(c *fiber.Ctx) error {
	if kc == nil {
		return helper.SendResponse(c, kubeutils.ConfigError().Error(), nil, fiber.StatusServiceUnavailable)
	}
	resources, err := kc.GetRemainingNodeResources(c.Context())
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Cluster resources", resources, fiber.StatusOK)
}

// GetTotalResources reports per-node allocatable capacity.
func GetTotalResources(c *fiber.Ctx) error {
	if kc == nil {
		return helper.SendResponse(c, kubeutils.ConfigError().Error(), nil, fiber.StatusServiceUnavailable)
	}
	resources, err := kc.GetTotalNodeResources(c.Context())
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Total cluster resources", resources, fiber.StatusOK)
}

func CheckHealth(c *fiber.Ctx) error {
	return helper.SendResponse(c, "OK", nil, fiber.StatusOK)
}
