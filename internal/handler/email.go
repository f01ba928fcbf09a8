package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/middleware"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
)

type EmailHandler struct {
	emailService service.EmailService
}

func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
	}
}

func (h *EmailHandler) Send(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)

	var req dto.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.emailService.Send(ctx, wallet, &req.EmailData)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) Verify(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	return c.JSON(http.StatusOK, &dto.VerifyEmailResponse{
		Valid:                 h.emailService.Verify(&req.EmailData, req.StoredHash),
		VerificationTimestamp: time.Now().UTC(),
	})
}

func (h *EmailHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.emailService.List(ctx, wallet, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"emails": records,
		"count":  len(records),
	})
}

func (h *EmailHandler) GetContent(c echo.Context) error {
	ctx := c.Request().Context()
	wallet := middleware.WalletFromContext(c)
	emailID := c.Param("emailID")

	email, err := h.emailService.GetContent(ctx, wallet, emailID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, email)
}
