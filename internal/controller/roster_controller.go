package controller

import (
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRosterController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
	Shared(ctx *fiber.Ctx) error
}

type rosterController struct {
	service service.IRosterService
}

func NewRosterController(service service.IRosterService) IRosterController {
	return &rosterController{service: service}
}

func (c *rosterController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/roster/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Post(":id/share", c.Share)
	h.Get("shared", c.Shared)
}

func (c *rosterController) Show(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.GetRoster(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get roster", res))
}

func (c *rosterController) Share(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)
	reviewerId := ctx.Params("id")

	res, err := c.service.ShareDocument(sessionId, reviewerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success share document", res))
}

func (c *rosterController) Shared(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.SharedDocuments(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get shared documents", res))
}
