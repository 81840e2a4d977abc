package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"tsmarket/internal/delivery/http/response"
	"tsmarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RewardHandler holds dependencies for level-reward handlers.
type RewardHandler struct {
	uc     usecase.RewardUsecase
	logger *slog.Logger
}

// NewRewardHandler is the constructor for RewardHandler, injected by Fx.
func NewRewardHandler(uc usecase.RewardUsecase, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{uc: uc, logger: logger}
}

// ListRewards returns all rewards annotated with the caller's claim state.
func (h *RewardHandler) ListRewards(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	rewards, err := h.uc.ListRewards(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rewards, "Rewards retrieved successfully")
}

// ClaimReward redeems the reward gated at the level in the path.
func (h *RewardHandler) ClaimReward(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	level, err := strconv.Atoi(c.Param("level"))
	if err != nil || level < 1 {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid level parameter")
	}

	reward, err := h.uc.ClaimReward(c.Request().Context(), userID, level)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reward, "Reward claimed successfully")
}
