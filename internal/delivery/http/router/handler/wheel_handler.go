package handler

import (
	"log/slog"
	"net/http"

	"tsmarket/internal/delivery/http/response"
	"tsmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WheelHandler holds dependencies for prize-wheel handlers.
type WheelHandler struct {
	uc     usecase.WheelUsecase
	logger *slog.Logger
}

// NewWheelHandler is the constructor for WheelHandler, injected by Fx.
func NewWheelHandler(uc usecase.WheelUsecase, logger *slog.Logger) *WheelHandler {
	return &WheelHandler{uc: uc, logger: logger}
}

// ListPrizes returns the configured wheel segments.
func (h *WheelHandler) ListPrizes(c echo.Context) error {
	prizes, err := h.uc.ListPrizes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, prizes, "Wheel prizes retrieved successfully")
}

// Spin consumes one spin entitlement and returns the drawn prize.
func (h *WheelHandler) Spin(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.Spin(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Wheel spun successfully")
}
