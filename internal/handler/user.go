package handler

import (
	"net/http"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/middleware"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	ledger service.CreditLedger
}

func NewUserHandler(ledger service.CreditLedger) *UserHandler {
	return &UserHandler{
		ledger: ledger,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)

	account, err := h.ledger.GetAccount(ctx, wallet)
	if err != nil {
		return httpError(err)
	}

	var features []string
	if account.Features != "" {
		features = strings.Split(account.Features, ",")
	}

	tier := model.SubscriptionTiers[account.Tier]

	return c.JSON(http.StatusOK, &dto.UserProfileResponse{
		WalletAddress:    account.WalletAddress,
		WalletType:       account.WalletType,
		SubscriptionTier: account.Tier,
		EmailCredits:     account.CreditBalance,
		PremiumFeatures:  features,
		MaxAttachmentMiB: tier.MaxAttachmentSize / (1024 * 1024),
	})
}

func (h *UserHandler) GetSubscriptionTiers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tiers": model.SubscriptionTiers,
	})
}

func (h *UserHandler) GetCreditPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"packages": model.CreditPackages,
	})
}
