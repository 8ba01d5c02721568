package controller

import (
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPhaseController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	CompleteAction(ctx *fiber.Ctx) error
	Advance(ctx *fiber.Ctx) error
}

type phaseController struct {
	service service.IPhaseService
}

func NewPhaseController(service service.IPhaseService) IPhaseController {
	return &phaseController{service: service}
}

func (c *phaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/phase/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Post("action", c.CompleteAction)
	h.Post("advance", c.Advance)
}

func (c *phaseController) Show(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.GetPhase(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get phase", res))
}

func (c *phaseController) CompleteAction(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	var req dto.CompleteActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CompleteAction(sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete action", res))
}

func (c *phaseController) Advance(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.Advance(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success advance phase", res))
}
