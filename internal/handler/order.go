package handler

import (
	"net/http"

	"cupcake-store/internal/dto"
	"cupcake-store/internal/middleware"
	"cupcake-store/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService  service.OrderService
	reportService service.ReportService
}

func NewOrderHandler(orderService service.OrderService, reportService service.ReportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		reportService: reportService,
	}
}

// Create places an order; with a valid token the order belongs to that
// account, otherwise it is a guest order.
func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var owner *uint
	if accountID, ok := middleware.AccountID(c); ok {
		owner = &accountID
	}

	order, err := h.orderService.CreateOrder(ctx, owner, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CreateOrderResponse{
		Success: true,
		OrderID: order.ID,
		Total:   order.TotalAmount,
		Message: "order created",
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	accountID, _ := middleware.AccountID(c)

	orders, err := h.orderService.ListAccountOrders(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// admin

func (h *OrderHandler) Detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.orderService.GetOrderDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, _ := middleware.AccountID(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.orderService.UpdateStatus(ctx, adminID, id, req.Status); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SuccessResponse{
		Success: true,
		Message: "status updated",
	})
}

func (h *OrderHandler) Stats(c echo.Context) error {
	stats, err := h.reportService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
