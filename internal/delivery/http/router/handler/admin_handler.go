package handler

import (
	"log/slog"
	"net/http"

	"tsmarket/internal/delivery/http/response"
	"tsmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the privileged management handlers.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	topUpUC usecase.TopUpUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, topUpUC usecase.TopUpUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, topUpUC: topUpUC, logger: logger}
}

// Stats returns the storefront overview counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminUC.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Stats retrieved successfully")
}

// ListUsers returns all registered users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

type adjustBalanceInput struct {
	Balance float64 `json:"balance"`
}

// AdjustBalance sets a user's balance to an absolute value.
func (h *AdminHandler) AdjustBalance(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *adjustBalanceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid balance input")
	}

	user, err := h.adminUC.AdjustBalance(c.Request().Context(), userID, input.Balance)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Balance updated successfully")
}

type adjustXPInput struct {
	XP int `json:"xp"`
}

// AdjustXP sets a user's XP to an absolute value. The level is recomputed
// but no compensating wheel spins are granted.
func (h *AdminHandler) AdjustXP(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *adjustXPInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid XP input")
	}

	user, err := h.adminUC.AdjustXP(c.Request().Context(), userID, input.XP)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "XP updated successfully")
}

type setAdminInput struct {
	IsAdmin bool `json:"is_admin"`
}

// SetAdmin flips a user's admin flag.
func (h *AdminHandler) SetAdmin(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *setAdminInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid admin flag input")
	}

	if err := h.adminUC.SetAdmin(c.Request().Context(), userID, input.IsAdmin); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin flag updated successfully")
}

// DeleteUser removes a user account. Self-deletion is rejected.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	callerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), callerID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// ListAllOrders returns every order across all users.
func (h *AdminHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.adminUC.ListAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// CreateReward adds a level-gated reward definition.
func (h *AdminHandler) CreateReward(c echo.Context) error {
	var input *usecase.RewardInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reward input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	reward, err := h.adminUC.CreateReward(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, reward, "Reward created successfully")
}

// DeleteReward removes a reward definition.
func (h *AdminHandler) DeleteReward(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteReward(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reward deleted successfully")
}

// CreateWheelPrize adds a wheel segment.
func (h *AdminHandler) CreateWheelPrize(c echo.Context) error {
	var input *usecase.WheelPrizeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wheel prize input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	prize, err := h.adminUC.CreateWheelPrize(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, prize, "Wheel prize created successfully")
}

// DeleteWheelPrize removes a wheel segment.
func (h *AdminHandler) DeleteWheelPrize(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteWheelPrize(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Wheel prize deleted successfully")
}

// ListTopUpRequests returns every top-up request for review.
func (h *AdminHandler) ListTopUpRequests(c echo.Context) error {
	requests, err := h.topUpUC.ListAllRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Top-up requests retrieved successfully")
}

// ApproveTopUpRequest approves a pending request and credits the amount.
func (h *AdminHandler) ApproveTopUpRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	request, err := h.topUpUC.ApproveRequest(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Top-up request approved successfully")
}

type rejectRequestInput struct {
	Note string `json:"note"`
}

// RejectTopUpRequest rejects a pending request without crediting.
func (h *AdminHandler) RejectTopUpRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *rejectRequestInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rejection input")
	}

	request, err := h.topUpUC.RejectRequest(c.Request().Context(), id, input.Note)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Top-up request rejected successfully")
}

// SavePaymentSettings replaces the card details shown for manual transfers.
func (h *AdminHandler) SavePaymentSettings(c echo.Context) error {
	var input *usecase.PaymentSettingsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment settings input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.topUpUC.SavePaymentSettings(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment settings saved successfully")
}

// CreateTopUpCode mints a voucher code.
func (h *AdminHandler) CreateTopUpCode(c echo.Context) error {
	var input *usecase.TopUpCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid top-up code input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	code, err := h.topUpUC.CreateCode(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, code, "Top-up code created successfully")
}

// ListTopUpCodes returns all voucher codes with their redemption state.
func (h *AdminHandler) ListTopUpCodes(c echo.Context) error {
	codes, err := h.topUpUC.ListCodes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codes, "Top-up codes retrieved successfully")
}

// DeleteTopUpCode removes a voucher code.
func (h *AdminHandler) DeleteTopUpCode(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.topUpUC.DeleteCode(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Top-up code deleted successfully")
}
