package serverutils

import (
	"errors"

	"academic-workflow-be/internal/service"
	"academic-workflow-be/pkg/mission/runner"
	"academic-workflow-be/pkg/mission/template"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers further down
// the chain into JSON responses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}

// ErrorHandler maps service and runner sentinels onto HTTP statuses. A
// *BoxRunnerError is inspected through its cause, so a missing document
// inside a run still answers 404.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMissionNotFound),
		errors.Is(err, runner.ErrBoxNotFound),
		errors.Is(err, runner.ErrDocumentNotFound),
		errors.Is(err, runner.ErrItemNotFound),
		errors.Is(err, template.ErrUnknownTemplate):
		status = fiber.StatusNotFound
	case errors.Is(err, runner.ErrAlreadyRunning):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, runner.ErrInvalidStateTransition),
		errors.Is(err, runner.ErrMissingInput),
		errors.Is(err, runner.ErrNoDocuments),
		errors.Is(err, runner.ErrNoChunks),
		errors.Is(err, runner.ErrUnimplementedBoxType):
		status = fiber.StatusBadRequest
	}

	return ctx.Status(status).JSON(ErrorResponse(err.Error()))
}
