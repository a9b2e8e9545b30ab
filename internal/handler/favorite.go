package handler

import (
	"net/http"

	"cupcake-store/internal/dto"
	"cupcake-store/internal/service"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) selfFromPath(c echo.Context) (uint, error) {
	userID, err := paramID(c, "userId")
	if err != nil {
		return 0, err
	}
	if err := requireSelf(c, userID); err != nil {
		return 0, err
	}
	return userID, nil
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.FavoriteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := requireSelf(c, req.UserID); err != nil {
		return err
	}

	if err := h.favoriteService.Add(ctx, req.UserID, req.CupcakeID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SuccessResponse{
		Success: true,
		Message: "added to favorites",
	})
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := h.selfFromPath(c)
	if err != nil {
		return err
	}
	cupcakeID, err := paramID(c, "cupcakeId")
	if err != nil {
		return err
	}

	if err := h.favoriteService.Remove(ctx, userID, cupcakeID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SuccessResponse{
		Success: true,
		Message: "removed from favorites",
	})
}

func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := h.selfFromPath(c)
	if err != nil {
		return err
	}

	products, err := h.favoriteService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *FavoriteHandler) ListIDs(c echo.Context) error {
	userID, err := h.selfFromPath(c)
	if err != nil {
		return err
	}

	ids, err := h.favoriteService.ListIDs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ids)
}

func (h *FavoriteHandler) Check(c echo.Context) error {
	userID, err := h.selfFromPath(c)
	if err != nil {
		return err
	}
	cupcakeID, err := paramID(c, "cupcakeId")
	if err != nil {
		return err
	}

	ok, err := h.favoriteService.Check(c.Request().Context(), userID, cupcakeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &dto.FavoriteCheckResponse{IsFavorite: ok})
}
