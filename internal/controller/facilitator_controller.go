package controller

import (
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFacilitatorController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type facilitatorController struct {
	service service.IFacilitatorService
}

func NewFacilitatorController(service service.IFacilitatorService) IFacilitatorController {
	return &facilitatorController{service: service}
}

func (c *facilitatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/facilitator/v1")
	h.Post("login", c.Login)
	h.Get("logs", serverutils.FacilitatorMiddleware, c.Logs)
}

func (c *facilitatorController) Login(ctx *fiber.Ctx) error {
	var req dto.FacilitatorLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success login", res))
}

func (c *facilitatorController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}
