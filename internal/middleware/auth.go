package middleware

import (
	"strings"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/auth"
	"cupcake-store/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	accountIDKey     = "account_id"
	adminKey         = "admin"
	tokenRejectedKey = "token_rejected"

	msgInvalidToken = "invalid or expired token"
)

// Authenticate reads an optional bearer token. A request whose token is
// missing, invalid, expired or names an unknown account continues as a guest;
// RequireAccount and RequireAdmin turn a rejected token into a 401.
func Authenticate(issuer *auth.TokenIssuer, accountService service.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				c.Set(tokenRejectedKey, "invalid authorization header format")
				return next(c)
			}

			claims, err := issuer.Parse(strings.TrimSpace(token))
			if err != nil {
				c.Set(tokenRejectedKey, msgInvalidToken)
				return next(c)
			}

			accountID, err := claims.AccountID()
			if err != nil {
				c.Set(tokenRejectedKey, msgInvalidToken)
				return next(c)
			}

			// tokens outlive database resets; only existing accounts count
			if _, err := accountService.GetAccount(c.Request().Context(), accountID); err != nil {
				if apperr.KindOf(err) != apperr.KindNotFound {
					return err
				}
				c.Set(tokenRejectedKey, msgInvalidToken)
				return next(c)
			}

			c.Set(accountIDKey, accountID)
			return next(c)
		}
	}
}

func authRequired(c echo.Context) error {
	if reason, _ := c.Get(tokenRejectedKey).(string); reason != "" {
		return apperr.Auth(reason)
	}
	return apperr.Auth("authentication required")
}

func RequireAccount() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := AccountID(c); !ok {
				return authRequired(c)
			}
			return next(c)
		}
	}
}

// RequireAdmin checks the stored role of the token's account on every request,
// so a demoted account loses access without waiting for token expiry.
func RequireAdmin(accountService service.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, ok := AccountID(c)
			if !ok {
				return authRequired(c)
			}

			if _, err := accountService.RequireAdmin(c.Request().Context(), accountID); err != nil {
				return err
			}

			c.Set(adminKey, true)
			return next(c)
		}
	}
}

func AccountID(c echo.Context) (uint, bool) {
	id, ok := c.Get(accountIDKey).(uint)
	return id, ok && id != 0
}

func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(adminKey).(bool)
	return admin
}
