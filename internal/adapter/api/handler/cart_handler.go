package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	cart, err := h.cartUseCase.GetCart(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)
	cart, err := h.cartUseCase.AddToCart(c.Request().Context(), buyerID, req.ProductID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)
	cart, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), buyerID, c.Param("productId"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	cart, err := h.cartUseCase.RemoveFromCart(c.Request().Context(), buyerID, c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	if err := h.cartUseCase.ClearCart(c.Request().Context(), buyerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, &usecase.CartView{})
}

// Checkout turns the cart into one pending order per seller.
func (h *CartHandler) Checkout(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	orders, err := h.cartUseCase.Checkout(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, orders)
}
