package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/domain/entity"
	"cwrs/internal/usecase"
	"cwrs/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Username string `json:"username" validate:"max=50"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *entity.User `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		User:         result.User,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.Me(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
