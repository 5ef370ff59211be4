package templates

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"submarine-api/conf"
	"submarine-api/experiments"
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

// checkCodeRepo verifies a template's git source before the template is
// accepted, so submits do not fail later on a bad URL.
func checkCodeRepo(c *fiber.Ctx, spec *model.ExperimentTemplateSpec) error {
	code := spec.ExperimentSpec.Code
	if code == nil || code.Git == nil {
		return nil
	}
	_, err := IsValidGitHubRepo(c.Context(), code.Git.URL, code.Git.Branch, conf.Get().GitHubToken)
	return err
}

// RegisterTemplate stores a new experiment template.
func RegisterTemplate(c *fiber.Ctx) error {
	var spec model.ExperimentTemplateSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing template body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	if spec.ExperimentSpec != nil {
		if err := checkCodeRepo(c, &spec); err != nil {
			log.Error("template code repository rejected: ", err)
			return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
		}
	}

	if err := getStore().Create(&spec); err != nil {
		log.Error("failed to register template: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("registered template: ", spec.Name)
	return helper.SendResponse(c, "Template registered", &spec, fiber.StatusOK)
}

// UpdateTemplate replaces an existing template.
func UpdateTemplate(c *fiber.Ctx) error {
	name := c.Params("name")

	var spec model.ExperimentTemplateSpec
	if err := c.BodyParser(&spec); err != nil {
		log.Error("error parsing template body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	updated, err := getStore().Update(name, &spec)
	if err != nil {
		log.Error("failed to update template: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	return helper.SendResponse(c, "Template updated", updated, fiber.StatusOK)
}

func ListTemplates(c *fiber.Ctx) error {
	specs, err := getStore().List()
	if err != nil {
		log.Error("failed to list templates: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusInternalServerError)
	}
	return helper.SendResponse(c, "Template list", specs, fiber.StatusOK)
}

func GetTemplate(c *fiber.Ctx) error {
	name := c.Params("name")
	spec, err := getStore().Get(name)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}
	return helper.SendResponse(c, "Template", spec, fiber.StatusOK)
}

func DeleteTemplate(c *fiber.Ctx) error {
	name := c.Params("name")
	spec, err := getStore().Delete(name)
	if err != nil {
		log.Error("failed to delete template: ", err)
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	log.Info("deleted template: ", name)
	return helper.SendResponse(c, "Template deleted", spec, fiber.StatusOK)
}

// SubmitTemplate renders a template with the submitted parameters and
// creates an experiment from the result.
func SubmitTemplate(c *fiber.Ctx) error {
	name := c.Params("name")

	var submit model.ExperimentTemplateSubmit
	if err := c.BodyParser(&submit); err != nil {
		log.Error("error parsing template submit body: ", err)
		return helper.SendResponse(c, "Invalid request", nil, fiber.StatusBadRequest)
	}

	tpl, err := getStore().Get(name)
	if err != nil {
		return helper.SendResponse(c, err.Error(), nil, statusFor(err))
	}

	spec, err := Render(tpl, submit.Params)
	if err != nil {
		log.Error("failed to render template: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	exp, err := experiments.Submit(c.Context(), spec)
	if err != nil {
		log.Error("failed to submit templated experiment: ", err)
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}

	log.Info("submitted experiment from template: ", name)
	return helper.SendResponse(c, "Experiment accepted", exp, fiber.StatusOK)
}
