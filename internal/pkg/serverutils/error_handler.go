package serverutils

import (
	"errors"

	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindRateLimit:
		return fiber.StatusTooManyRequests
	case apperror.KindProcessing:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into JSON error responses.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err, log)
	}
}

// FiberErrorHandler plugs the same mapping into fiber.Config for errors that bypass the middleware.
func FiberErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return WriteError(ctx, err, log)
	}
}

func WriteError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := StatusFor(appErr.Kind)
		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"kind":   string(appErr.Kind),
		}
		if appErr.Err != nil {
			details["error"] = appErr.Err.Error()
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", appErr.Message, details)
		} else {
			log.Warn("HTTP", appErr.Message, details)
		}
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message, appErr.Details...))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	log.Error("HTTP", "Unhandled error", map[string]interface{}{
		"method": ctx.Method(),
		"path":   ctx.Path(),
		"error":  err.Error(),
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
