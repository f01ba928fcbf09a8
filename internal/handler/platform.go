package handler

import (
	"net/http"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

type PlatformHandler struct {
	assistantService service.AssistantService
	chainService     service.ChainService
}

func NewPlatformHandler(assistantService service.AssistantService, chainService service.ChainService) *PlatformHandler {
	return &PlatformHandler{
		assistantService: assistantService,
		chainService:     chainService,
	}
}

func (h *PlatformHandler) GenerateDraft(c echo.Context) error {
	var req dto.DraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	return c.JSON(http.StatusOK, h.assistantService.GenerateDraft(&req))
}

func (h *PlatformHandler) ListChains(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"chains": h.chainService.ListChains(),
	})
}

func (h *PlatformHandler) GetChainBalance(c echo.Context) error {
	balance, err := h.chainService.GetBalance(c.Param("chain"), c.Param("address"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, balance)
}
