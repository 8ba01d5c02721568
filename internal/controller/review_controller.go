package controller

import (
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	Request(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type reviewController struct {
	service service.IReviewService
}

func NewReviewController(service service.IReviewService) IReviewController {
	return &reviewController{service: service}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Request)
	h.Delete("", c.Clear)
	h.Get("", c.List)
	h.Put(":id/resolve", c.Resolve)
}

func (c *reviewController) Request(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	var req dto.RequestReviewRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RequestReview(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request review", res))
}

func (c *reviewController) Clear(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	if err := c.service.ClearReview(sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear review", nil))
}

func (c *reviewController) List(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	res, err := c.service.ListComments(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get comments", res))
}

func (c *reviewController) Resolve(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)
	id := ctx.Params("id")

	res, err := c.service.Resolve(sessionId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve comment", res))
}
