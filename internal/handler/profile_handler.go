package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// ProfileHandler handles the caller's own profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// SendPhoneOTPRequest starts phone verification for a number.
type SendPhoneOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// VerifyPhoneOTPRequest completes phone verification.
type VerifyPhoneOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
}

// UpdateProfilePicRequest sets the user's profile picture URL.
type UpdateProfilePicRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// Get godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// SendPhoneOTP godoc
// @Summary Send a phone verification OTP
// @Tags profile
// @Accept json
// @Produce json
// @Param request body SendPhoneOTPRequest true "Phone number"
// @Success 200 {object} map[string]string
// @Failure 502 {object} errors.ErrorResponse
// @Router /profile/phone/send-otp [post]
func (h *ProfileHandler) SendPhoneOTP(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SendPhoneOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profileService.SendPhoneOTP(c.Request().Context(), claims.UserID, req.PhoneNumber); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

// VerifyPhoneOTP godoc
// @Summary Verify the phone OTP and save the number
// @Tags profile
// @Accept json
// @Produce json
// @Param request body VerifyPhoneOTPRequest true "Phone number and OTP"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/phone/verify-otp [post]
func (h *ProfileHandler) VerifyPhoneOTP(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req VerifyPhoneOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.VerifyPhoneOTP(c.Request().Context(), claims.UserID, req.PhoneNumber, req.OTP)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Phone number verified",
		"user":    user,
	})
}

// UpdateProfilePic godoc
// @Summary Update the caller's profile picture
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfilePicRequest true "Image URL"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/picture [put]
func (h *ProfileHandler) UpdateProfilePic(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfilePicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.UpdateProfilePic(c.Request().Context(), claims.UserID, req.ImageURL)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
