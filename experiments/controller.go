package experiments

import (
	"bufio"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"

	"submarine-api/helper"
	"submarine-api/internal/sse"
	"submarine-api/pkg/client/model"
)

func statusFor(err error) int {
	if errors.Is(err, ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

// CreateExperiment validates and submits a new experiment.
func CreateExperiment(c *fiber.Ctx) error {
	var spec model.ExperimentSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing experiment body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	exp, err := getManager().Create(c.Context(), &spec)
	if err != nil {
		log.Error("failed to create experiment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Experiment accepted", exp, fiber.StatusOK)
}

// PatchExperiment resubmits an experiment with an updated spec.
func PatchExperiment(c *fiber.Ctx) error {
	id := c.Params("id")

	var spec model.ExperimentSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing experiment body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	exp, err := getManager().Patch(c.Context(), id, &spec)
	if err != nil {
		log.Error("failed to patch experiment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Experiment updated", exp, fiber.StatusOK)
}

func ListExperiments(c *fiber.Ctx) error {
	exps, err := getManager().List(c.Context())
	if err != nil {
		log.Error("failed to list experiments: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Experiment list", exps, fiber.StatusOK)
}

func GetExperiment(c *fiber.Ctx) error {
	id := c.Params("id")
	exp, err := getManager().Get(c.Context(), id)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Experiment", exp, fiber.StatusOK)
}

func DeleteExperiment(c *fiber.Ctx) error {
	id := c.Params("id")
	exp, err := getManager().Delete(c.Context(), id)
	if err != nil {
		log.Error("failed to delete experiment: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Experiment deleted", exp, fiber.StatusOK)
}

// ListExperimentLogs lists pod names per experiment, without content.
func ListExperimentLogs(c *fiber.Ctx) error {
	logs, err := getManager().ListLogs(c.Context())
	if err != nil {
		log.Error("failed to list experiment logs: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Experiment log list", logs, fiber.StatusOK)
}

// GetExperimentLogs returns the pod logs of one experiment.
func GetExperimentLogs(c *fiber.Ctx) error {
	id := c.Params("id")
	logs, err := getManager().GetLogs(c.Context(), id)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Experiment logs", logs, fiber.StatusOK)
}

// StreamExperimentStatus pushes the experiment list as server-sent events.
func StreamExperimentStatus(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		em := sse.NewBufioEmitter(w, "experiments")
		for {
			exps, err := getManager().List(c.Context())
			if err != nil {
				log.Error("error listing experiments for SSE: ", err)
				break
			}

			if flowErr := em.SendJSON("", "message", exps); flowErr.Err != nil {
				if flowErr.Next {
					continue
				}
				break
			}

			time.Sleep(5 * time.Second)
		}
	}))

	return nil
}
