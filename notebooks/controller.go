package notebooks

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

// CreateNotebook provisions a notebook server for the owner in the spec.
func CreateNotebook(c *fiber.Ctx) error {
	var spec model.NotebookSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing notebook body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	nb, err := getManager().Create(c.Context(), &spec)
	if err != nil {
		log.Error("failed to create notebook: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Notebook created", nb, fiber.StatusOK)
}

// ListNotebooks lists notebooks, filtered by the id query parameter, which
// carries the owner id.
func ListNotebooks(c *fiber.Ctx) error {
	ownerID := c.Query("id")
	nbs, err := getManager().List(c.Context(), ownerID)
	if err != nil {
		log.Error("failed to list notebooks: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Notebook list", nbs, fiber.StatusOK)
}

func GetNotebook(c *fiber.Ctx) error {
	id := c.Params("id")
	nb, err := getManager().Get(c.Context(), id)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Notebook", nb, fiber.StatusOK)
}

func DeleteNotebook(c *fiber.Ctx) error {
	id := c.Params("id")
	nb, err := getManager().Delete(c.Context(), id)
	if err != nil {
		log.Error("failed to delete notebook: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Notebook deleted", nb, fiber.StatusOK)
}

// StopNotebook shuts the workload down but keeps the notebook record.
func StopNotebook(c *fiber.Ctx) error {
	id := c.Params("id")
	nb, err := getManager().Stop(c.Context(), id)
	if err != nil {
		log.Error("failed to stop notebook: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Notebook stopped", nb, fiber.StatusOK)
}

// GetNotebookMetrics reports current pod usage for one notebook.
func GetNotebookMetrics(c *fiber.Ctx) error {
	id := c.Params("id")
	metrics, err := getManager().Metrics(c.Context(), id)
	if err != nil {
		log.Error("failed to fetch notebook metrics: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Notebook metrics", metrics, fiber.StatusOK)
}

// StreamNotebookStatus pushes the notebook list as server-sent events.
func StreamNotebookStatus(c *fiber.Ctx) error {
	ownerID := c.Query("id")

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		em := sse.NewBufioEmitter(w, "notebooks")
		for {
			nbs, err := getManager().List(c.Context(), ownerID)
			if err != nil {
				log.Error("error listing notebooks for SSE: ", err)
				break
			}

			if flowErr := em.SendJSON("", "message", nbs); flowErr.Err != nil {
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
