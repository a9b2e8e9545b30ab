package handler

import (
	"strconv"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/middleware"

	"github.com/labstack/echo/v4"
)

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

// requireSelf lets a caller touch only their own resources.
func requireSelf(c echo.Context, userID uint) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return apperr.Auth("authentication required")
	}
	if accountID != userID {
		return apperr.Permission("access denied")
	}
	return nil
}
