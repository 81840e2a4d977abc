package handler

import (
	"log/slog"
	"net/http"

	"tsmarket/internal/delivery/http/response"
	"tsmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TopUpHandler holds dependencies for voucher and top-up request handlers.
type TopUpHandler struct {
	uc     usecase.TopUpUsecase
	logger *slog.Logger
}

// NewTopUpHandler is the constructor for TopUpHandler, injected by Fx.
func NewTopUpHandler(uc usecase.TopUpUsecase, logger *slog.Logger) *TopUpHandler {
	return &TopUpHandler{uc: uc, logger: logger}
}

type redeemCodeInput struct {
	Code string `json:"code" validate:"required"`
}

// RedeemCode consumes a voucher code and credits its amount.
func (h *TopUpHandler) RedeemCode(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *redeemCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redeem input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.RedeemCode(c.Request().Context(), userID, input.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Code redeemed successfully")
}

// CreateRequest files a pending card-payment top-up for admin review.
func (h *TopUpHandler) CreateRequest(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.TopUpRequestInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid top-up request input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	request, err := h.uc.CreateRequest(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Top-up request created successfully")
}

// ListRequests returns the caller's top-up requests.
func (h *TopUpHandler) ListRequests(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requests, err := h.uc.ListRequests(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Top-up requests retrieved successfully")
}

// PaymentSettings returns the public card details for manual transfers.
func (h *TopUpHandler) PaymentSettings(c echo.Context) error {
	settings, err := h.uc.PaymentSettings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Payment settings retrieved successfully")
}

// PaymentSettingsQR renders the card details as a PNG QR code.
func (h *TopUpHandler) PaymentSettingsQR(c echo.Context) error {
	png, err := h.uc.PaymentSettingsQR(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
