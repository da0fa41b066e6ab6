package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/response"
	"cwrs/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// Price and quantity are pointers so a missing field can be told apart from 0.
type productRequest struct {
	Name         string   `json:"name" validate:"max=100"`
	Price        *float64 `json:"price"`
	Quantity     *float64 `json:"quantity"`
	Weight       string   `json:"weight" validate:"max=50"`
	MaterialType string   `json:"material_type" validate:"max=50"`
	Location     string   `json:"location" validate:"max=100"`
	PhotoURL     string   `json:"photo_url" validate:"omitempty,url"`
}

func (r productRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:         r.Name,
		Price:        r.Price,
		Quantity:     r.Quantity,
		Weight:       r.Weight,
		MaterialType: r.MaterialType,
		Location:     r.Location,
		PhotoURL:     r.PhotoURL,
	}
}

func (h *ProductHandler) bind(c echo.Context) (*productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)
	product, err := h.productUseCase.CreateProduct(c.Request().Context(), sellerID, req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)
	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), sellerID, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), sellerID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	products, err := h.productUseCase.ListMyProducts(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, products, len(products))
}

// ListProducts serves the buyer catalog. Query: name, quantity_min,
// weight_min, material_type, and optional page/limit.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := usecase.ProductFilter{
		Name:         c.QueryParam("name"),
		QuantityMin:  utils.OptionalInt(c.QueryParam("quantity_min")),
		WeightMin:    utils.OptionalFloat(c.QueryParam("weight_min")),
		MaterialType: c.QueryParam("material_type"),
	}

	products, err := h.productUseCase.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	total := len(products)
	if p, ok := utils.GetPaginationParams(c); ok {
		products = utils.Paginate(products, p)
	}
	return response.List(c, products, total)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) FindOrphanedProducts(c echo.Context) error {
	orphans, err := h.productUseCase.FindOrphanedProducts(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, orphans, len(orphans))
}
