package handler

import (
	"errors"
	"net/http"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/labstack/echo/v4"
)

// httpError maps sentinel errors onto HTTP statuses. Insufficient credit
// gets its own status so clients can route the user to the purchase flow.
func httpError(err error) error {
	switch {
	case errors.Is(err, common.ErrInsufficientCredit):
		return echo.NewHTTPError(http.StatusPaymentRequired, common.ErrInsufficientCredit.Error())
	case errors.Is(err, common.ErrPayloadTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, common.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidSignature), errors.Is(err, common.ErrChallengeExpired), errors.Is(err, common.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrStorageUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, common.ErrDecryptionFailed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
