package controller

import (
	"encoding/json"

	"academic-workflow-be/internal/dto"
	"academic-workflow-be/internal/pkg/serverutils"
	"academic-workflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMissionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateState(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	RunBox(ctx *fiber.Ctx) error
}

type missionController struct {
	missionService service.IMissionService
}

func NewMissionController(missionService service.IMissionService) IMissionController {
	return &missionController{
		missionService: missionService,
	}
}

func (c *missionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mission/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id/state", c.UpdateState)
	h.Delete(":id", c.Delete)
	h.Post(":id/box/:boxId/run", c.RunBox)
}

func (c *missionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.missionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create mission", res))
}

func (c *missionController) List(ctx *fiber.Ctx) error {
	var req dto.ListMissionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.missionService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list missions", res))
}

func (c *missionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mission id")
	}

	res, err := c.missionService.GetDetail(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get mission", res))
}

func (c *missionController) UpdateState(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mission id")
	}

	var req dto.UpdateMissionStateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.missionService.UpdateState(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update mission state", nil))
}

func (c *missionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mission id")
	}

	if err := c.missionService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete mission", nil))
}

func (c *missionController) RunBox(ctx *fiber.Ctx) error {
	missionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mission id")
	}
	boxId, err := uuid.Parse(ctx.Params("boxId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid box id")
	}

	// The body is the stage payload itself; the runner decodes it per
	// box type and rejects what it cannot use.
	payload := json.RawMessage(ctx.Body())

	res, err := c.missionService.RunBox(ctx.Context(), &dto.RunBoxRequest{
		MissionId: missionId,
		BoxId:     boxId,
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run box", res))
}
