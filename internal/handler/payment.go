package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/middleware"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateSubscription(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.CreateSubscriptionCheckout(ctx, wallet, req.PackageName, req.OriginURL)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) CreateCredits(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.CreateCreditsCheckout(ctx, wallet, req.PackageName, req.OriginURL)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// PollStatus lets the client drive reconciliation after returning from the
// hosted checkout page. Both this and the webhook end up in the same
// idempotent reconcile path.
func (h *PaymentHandler) PollStatus(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.Param("sessionID")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	outcome, err := h.paymentService.PollStatus(ctx, sessionID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.PaymentStatusResponse{
		SessionID: outcome.SessionID,
		Status:    outcome.Status,
		Applied:   outcome.Applied,
	})
}

func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.paymentService.HandleWebhook(ctx, body); err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.NoContent(http.StatusOK)
}
