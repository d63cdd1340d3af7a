package controller

import (
	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/pkg/serverutils"
	"pharma-warehouse-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPurchaseOrderController interface {
	RegisterRoutes(r fiber.Router)
	CreateFromGeneration(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type purchaseOrderController struct {
	purchaseOrderService service.IPurchaseOrderService
}

func NewPurchaseOrderController(purchaseOrderService service.IPurchaseOrderService) IPurchaseOrderController {
	return &purchaseOrderController{
		purchaseOrderService: purchaseOrderService,
	}
}

func (c *purchaseOrderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/purchase-order/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("from-generation/:sessionId", c.CreateFromGeneration)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id/status", c.UpdateStatus)
}

func (c *purchaseOrderController) CreateFromGeneration(ctx *fiber.Ctx) error {
	res, err := c.purchaseOrderService.CreateFromGeneration(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success create purchase order draft", res))
}

func (c *purchaseOrderController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.purchaseOrderService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get purchase orders", res))
}

func (c *purchaseOrderController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid purchase order id")
	}

	res, err := c.purchaseOrderService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show purchase order", res))
}

func (c *purchaseOrderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid purchase order id")
	}

	var req dto.UpdatePurchaseOrderStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.purchaseOrderService.UpdateStatus(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update purchase order status", res))
}
