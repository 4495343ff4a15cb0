package controller

import (
	"strconv"
	"strings"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/serverutils"
	"pdf-summarizer-be/internal/pkg/session"
	"pdf-summarizer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const recentUploadsLimit = 10

type IUploadController interface {
	RegisterRoutes(r fiber.Router, uploadLimiter fiber.Handler)
	Index(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	ingestion     service.IIngestionService
	prompts       service.IPromptService
	summaries     service.ISummaryService
	maxFileSizeMB int
}

func NewUploadController(
	ingestion service.IIngestionService,
	prompts service.IPromptService,
	summaries service.ISummaryService,
	maxFileSizeMB int,
) IUploadController {
	return &uploadController{
		ingestion:     ingestion,
		prompts:       prompts,
		summaries:     summaries,
		maxFileSizeMB: maxFileSizeMB,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router, uploadLimiter fiber.Handler) {
	r.Get("/", c.Index)
	r.Post("/", uploadLimiter, c.Upload)
}

func (c *uploadController) Index(ctx *fiber.Ctx) error {
	templates, err := c.prompts.ListActive(ctx.Context())
	if err != nil {
		return err
	}

	def, err := c.prompts.ResolveDefault(ctx.Context())
	if err != nil {
		return err
	}

	recent, err := c.summaries.RecentUploads(ctx.Context(), session.FromContext(ctx), recentUploadsLimit)
	if err != nil {
		return err
	}

	res := &dto.IndexResponse{
		Templates:     templates,
		RecentUploads: recent,
		MaxFileSizeMB: c.maxFileSizeMB,
	}
	if def != nil {
		res.DefaultTemplateId = &def.Id
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get upload page", res))
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return apperror.Validation("No files selected")
	}

	req := &dto.IngestRequest{
		SessionID: session.FromContext(ctx),
		Files:     form.File["pdf_files"],
	}

	if values := form.Value["prompt_template_id"]; len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		id, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64)
		if err != nil {
			return apperror.Validation("Invalid prompt template selected")
		}
		tid := uint(id)
		req.PromptTemplateID = &tid
	}

	res, err := c.ingestion.Ingest(ctx.Context(), req)
	if err != nil {
		return err
	}

	ctx.Location("/results?ids=" + joinIDs(res.UploadIds))
	return ctx.Status(fiber.StatusSeeOther).JSON(serverutils.SuccessResponse(res.Message, res))
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
