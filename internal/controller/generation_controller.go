package controller

import (
	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/pkg/serverutils"
	"pharma-warehouse-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Result(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/po-generation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Get("status/:id", c.Status)
	h.Get("result/:id", c.Result)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.generationService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).
		JSON(serverutils.SuccessResponse("Generation started", res))
}

func (c *generationController) Status(ctx *fiber.Ctx) error {
	res, err := c.generationService.GetStatus(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generation status", res))
}

func (c *generationController) Result(ctx *fiber.Ctx) error {
	res, err := c.generationService.GetResult(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generation result", res))
}
