package middleware

import (
	"net/http"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	WalletAddressKey = "wallet_address"
	WalletTypeKey    = "wallet_type"
)

// JWTAuth extracts and verifies the bearer token, storing the wallet
// identity in the request context.
func JWTAuth(authService service.WalletAuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(WalletAddressKey, claims.WalletAddress)
			c.Set(WalletTypeKey, claims.WalletType)
			return next(c)
		}
	}
}

// WalletFromContext returns the authenticated wallet address set by JWTAuth.
func WalletFromContext(c echo.Context) string {
	wallet, _ := c.Get(WalletAddressKey).(string)
	return wallet
}
