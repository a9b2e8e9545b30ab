package handler

import (
	"net/http"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/auth"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/middleware"
	"cupcake-store/internal/model"
	"cupcake-store/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	accountService service.AccountService
	issuer         *auth.TokenIssuer
}

func NewAuthHandler(accountService service.AccountService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		issuer:         issuer,
	}
}

func (h *AuthHandler) respondWithToken(c echo.Context, account *model.PublicAccount, message string) error {
	token, err := h.issuer.Issue(account)
	if err != nil {
		return apperr.Storage(err)
	}

	return c.JSON(http.StatusOK, &dto.AuthResponse{
		Success: true,
		User:    account,
		Token:   token,
		Message: message,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.accountService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.respondWithToken(c, account, "account created")
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.accountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.respondWithToken(c, account, "logged in")
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	accountID, _ := middleware.AccountID(c)
	account, err := h.accountService.GetAccount(ctx, accountID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Auth("user not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, account)
}

func (h *AuthHandler) CheckAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	isAdmin, err := h.accountService.IsAdmin(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return c.JSON(http.StatusNotFound, &dto.CheckAdminResponse{
				IsAdmin: false,
				Error:   apperr.PublicMessage(err),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckAdminResponse{IsAdmin: isAdmin})
}
