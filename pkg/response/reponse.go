package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "cwrs/pkg/errors"
)

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func List(c echo.Context, items interface{}, total int) error {
	return Success(c, ListResponse{Items: items, Total: total})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, Response{
			Success:   false,
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
			},
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, _ := httpErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, Response{
			Success:   false,
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    "BAD_REQUEST",
				Message: msg,
			},
		})
	}

	return c.JSON(http.StatusInternalServerError, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		},
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	message := "Invalid input data"
	if len(validationErr) > 0 {
		fe := validationErr[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + fe.Param()
		case "max":
			message = field + " must be at most " + fe.Param()
		case "gt":
			message = field + " must be greater than " + fe.Param()
		case "gte":
			message = field + " must be greater than or equal to " + fe.Param()
		case "oneof":
			message = field + " must be one of: " + fe.Param()
		case "email":
			message = field + " must be a valid email address"
		case "eqfield":
			message = field + " must match " + strings.ToLower(fe.Param())
		default:
			message = field + " is invalid"
		}
	}

	return c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    "VALIDATION_ERROR",
			Message: message,
		},
	})
}
