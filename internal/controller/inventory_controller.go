package controller

import (
	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/pkg/serverutils"
	"pharma-warehouse-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInventoryController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type inventoryController struct {
	inventoryService service.IInventoryService
}

func NewInventoryController(inventoryService service.IInventoryService) IInventoryController {
	return &inventoryController{
		inventoryService: inventoryService,
	}
}

func (c *inventoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/inventory/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("medications", c.GetAll)
	h.Get("medications/:id", c.Show)
}

func (c *inventoryController) GetAll(ctx *fiber.Ctx) error {
	var req dto.GetAllMedicationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.inventoryService.GetAll(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get medications", res))
}

func (c *inventoryController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid medication id")
	}

	res, err := c.inventoryService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "medication not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show medication", res))
}
