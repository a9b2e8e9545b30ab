package handler

import (
	"net/http"

	"cupcake-store/internal/dto"
	"cupcake-store/internal/middleware"
	"cupcake-store/internal/service"

	"github.com/labstack/echo/v4"
)

type CupcakeHandler struct {
	catalogService service.CatalogService
}

func NewCupcakeHandler(catalogService service.CatalogService) *CupcakeHandler {
	return &CupcakeHandler{
		catalogService: catalogService,
	}
}

func (h *CupcakeHandler) ListAvailable(c echo.Context) error {
	products, err := h.catalogService.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CupcakeHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// admin

func (h *CupcakeHandler) ListAll(c echo.Context) error {
	products, err := h.catalogService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CupcakeHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, _ := middleware.AccountID(c)

	var req dto.ProductInput
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.Create(ctx, adminID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ProductResponse{
		Success: true,
		Cupcake: product,
		Message: "cupcake created",
	})
}

func (h *CupcakeHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, _ := middleware.AccountID(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductInput
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.Update(ctx, adminID, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ProductResponse{
		Success: true,
		Cupcake: product,
		Message: "cupcake updated",
	})
}

func (h *CupcakeHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, _ := middleware.AccountID(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.Delete(ctx, adminID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SuccessResponse{
		Success: true,
		Message: "cupcake deleted",
	})
}
