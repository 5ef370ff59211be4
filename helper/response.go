package helper

import (
	"github.com/gofiber/fiber/v2"

	"submarine-api/pkg/client/model"
)

// SendResponse writes the platform JSON envelope. Success tracks the status
// code so SDK clients can rely on one field.
func SendResponse(c *fiber.Ctx, message string, result any, statuscode int) error {
	response := model.JsonResponse{
		Code:    statuscode,
		Success: statuscode >= 200 && statuscode < 300,
		Message: message,
		Result:  result,
	}
	c.Status(statuscode)
	return c.JSON(response)
}
