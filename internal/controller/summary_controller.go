package controller

import (
	"strconv"

	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/serverutils"
	"pdf-summarizer-be/internal/pkg/session"
	"pdf-summarizer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	Results(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	MyUploads(ctx *fiber.Ctx) error
	AllSummaries(ctx *fiber.Ctx) error
}

type summaryController struct {
	service service.ISummaryService
}

func NewSummaryController(service service.ISummaryService) ISummaryController {
	return &summaryController{service: service}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	r.Get("/results", c.Results)
	r.Get("/download/:summary_id", c.Download)
	r.Get("/my-uploads", c.MyUploads)
	r.Get("/all-summaries", c.AllSummaries)
}

func (c *summaryController) Results(ctx *fiber.Ctx) error {
	ids, err := service.ParseIDList(ctx.Query("ids"))
	if err != nil {
		return err
	}

	res, err := c.service.Results(ctx.Context(), ids)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get results", res))
}

func (c *summaryController) Download(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("summary_id"), 10, 64)
	if err != nil {
		return apperror.NotFound("Summary not found")
	}

	res, err := c.service.Download(ctx.Context(), uint(id))
	if err != nil {
		return err
	}

	ctx.Attachment(res.Filename)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.SendString(res.Content)
}

func (c *summaryController) MyUploads(ctx *fiber.Ctx) error {
	res, err := c.service.MyUploads(ctx.Context(), session.FromContext(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get my uploads", res))
}

func (c *summaryController) AllSummaries(ctx *fiber.Ctx) error {
	res, err := c.service.AllSummaries(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all summaries", res))
}
