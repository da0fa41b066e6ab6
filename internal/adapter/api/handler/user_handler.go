package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Username        string `json:"username" validate:"max=50"`
	PhoneNumber     string `json:"phone_number" validate:"max=30"`
	Location        string `json:"location" validate:"max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
	CurrentPassword string `json:"current_password"`
	Avatar          string `json:"avatar"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	view, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	view, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Location:        req.Location,
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
		CurrentPassword: req.CurrentPassword,
		Avatar:          req.Avatar,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	var req avatarRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	profile, err := h.userUseCase.UploadAvatar(c.Request().Context(), uid, req.Avatar)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) GetSellerInfo(c echo.Context) error {
	info, err := h.userUseCase.SellerInfo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, info)
}

// FindUsers lists the caller's counterparts, optionally filtered by ?q=.
func (h *UserHandler) FindUsers(c echo.Context) error {
	uid := c.Get("uid").(string)

	users, err := h.userUseCase.FindUsers(c.Request().Context(), uid, c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, users, len(users))
}

func (h *UserHandler) FindBuyers(c echo.Context) error {
	buyers, err := h.userUseCase.FindBuyers(c.Request().Context(), c.QueryParam("q"), c.QueryParam("location"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, buyers, len(buyers))
}
