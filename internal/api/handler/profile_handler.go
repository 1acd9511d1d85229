package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/api/middleware"
	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

type ProfileHandler struct {
	users ports.UserRepository
}

func NewProfileHandler(users ports.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

type profileResponse struct {
	ID             string      `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	MonthlyIncome  float64     `json:"monthlyIncome"`
	Savings        float64     `json:"savings"`
	TargetExpenses float64     `json:"targetExpenses"`
	FirstName      string      `json:"firstName,omitempty"`
	LastName       string      `json:"lastName,omitempty"`
}

type profileUpdateRequest struct {
	Username       string  `json:"username"`
	MonthlyIncome  float64 `json:"monthlyIncome" validate:"gte=0"`
	Savings        float64 `json:"savings" validate:"gte=0"`
	TargetExpenses float64 `json:"targetExpenses" validate:"gte=0"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		MonthlyIncome:  u.MonthlyIncome,
		Savings:        u.Savings,
		TargetExpenses: u.TargetExpenses,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
	}
}

// Get returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := h.users.FindByUsername(c.Request().Context(), identity.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// Update modifies the caller's profile. Renaming to a taken username is a
// 400, matching the original behaviour (not a 409).
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()
	user, err := h.users.FindByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := h.users.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if taken {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrUsernameTaken.Error()})
		}
		user.Username = req.Username
	}
	user.MonthlyIncome = req.MonthlyIncome
	user.Savings = req.Savings
	user.TargetExpenses = req.TargetExpenses
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UpdatedAt = time.Now().UTC()

	updated, err := h.users.Update(ctx, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(updated))
}
