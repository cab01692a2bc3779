package controller

import (
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/serverutils"
	"ai-knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Record(ctx *fiber.Ctx) error
}

type activityController struct {
	activityService service.IActivityService
}

func NewActivityController(activityService service.IActivityService) IActivityController {
	return &activityController{
		activityService: activityService,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/activity/v1")
	h.Get("", c.List)
	h.Post("", c.Record)
}

func (c *activityController) List(ctx *fiber.Ctx) error {
	var req dto.ListActivitiesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.activityService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list activities", res))
}

func (c *activityController) Record(ctx *fiber.Ctx) error {
	var req dto.RecordActivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.activityService.Record(ctx.Context(), req.Type, req.Title, req.Description, req.Icon); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success record activity", nil))
}
