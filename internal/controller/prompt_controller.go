package controller

import (
	"strconv"
	"strings"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/serverutils"
	"pdf-summarizer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPromptController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	NewForm(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type promptController struct {
	service service.IPromptService
}

func NewPromptController(service service.IPromptService) IPromptController {
	return &promptController{service: service}
}

func (c *promptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prompts")
	h.Get("", c.List)
	h.Get("/new", c.NewForm)
	h.Post("/new", c.Create)
	h.Get("/:id/edit", c.Edit)
	h.Post("/:id/edit", c.Update)
	h.Post("/:id/delete", c.Delete)
}

func (c *promptController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get prompt templates", res))
}

func (c *promptController) NewForm(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get prompt form", c.service.NewForm()))
}

func (c *promptController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePromptTemplateRequest
	if err := parsePromptBody(ctx, &req.Name, &req.PromptText, &req.IsActive); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Prompt template created successfully", res))
}

func (c *promptController) Edit(ctx *fiber.Ctx) error {
	id, err := promptID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get prompt template", res))
}

func (c *promptController) Update(ctx *fiber.Ctx) error {
	id, err := promptID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePromptTemplateRequest
	if err := parsePromptBody(ctx, &req.Name, &req.PromptText, &req.IsActive); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Prompt template updated successfully", res))
}

func (c *promptController) Delete(ctx *fiber.Ctx) error {
	id, err := promptID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Prompt template deleted successfully", nil))
}

func promptID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Prompt template not found")
	}
	return uint(id), nil
}

// parsePromptBody accepts JSON or an HTML form. In a form an unchecked is_active box is
// simply absent, so absence means inactive there; in JSON absence leaves the field nil.
func parsePromptBody(ctx *fiber.Ctx, name, text *string, isActive **bool) error {
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body struct {
			Name       string `json:"name"`
			PromptText string `json:"prompt_text"`
			IsActive   *bool  `json:"is_active"`
		}
		if err := ctx.BodyParser(&body); err != nil {
			return apperror.Validation("Invalid request body")
		}
		*name, *text, *isActive = strings.TrimSpace(body.Name), strings.TrimSpace(body.PromptText), body.IsActive
		return nil
	}

	*name = strings.TrimSpace(ctx.FormValue("name"))
	*text = strings.TrimSpace(ctx.FormValue("prompt_text"))
	active := checked(ctx.FormValue("is_active"))
	*isActive = &active
	return nil
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes", "y":
		return true
	}
	return false
}
