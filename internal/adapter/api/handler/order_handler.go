package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/response"
	"cwrs/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) ListBuyerOrders(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	orders, err := h.orderUseCase.ListBuyerOrders(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	total := len(orders)
	if p, ok := utils.GetPaginationParams(c); ok {
		orders = utils.Paginate(orders, p)
	}
	return response.List(c, orders, total)
}

func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	orders, err := h.orderUseCase.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	total := len(orders)
	if p, ok := utils.GetPaginationParams(c); ok {
		orders = utils.Paginate(orders, p)
	}
	return response.List(c, orders, total)
}

func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	order, err := h.orderUseCase.ConfirmOrder(c.Request().Context(), sellerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) Dashboard(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	dashboard, err := h.orderUseCase.SellerDashboard(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dashboard)
}
