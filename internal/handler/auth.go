package handler

import (
	"net/http"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.WalletAuthService
}

func NewAuthHandler(authService service.WalletAuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) CreateChallenge(c echo.Context) error {
	var req dto.AuthChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.WalletAddress == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "wallet_address is required")
	}

	challenge := h.authService.CreateChallenge(req.WalletAddress, req.WalletType)

	return c.JSON(http.StatusOK, challenge)
}

func (h *AuthHandler) VerifySignature(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AuthVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.authService.Authenticate(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}
