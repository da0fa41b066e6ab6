package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts ?page= and ?limit=. ok is false when the
// request asked for neither, in which case callers return everything.
func GetPaginationParams(c echo.Context) (params PaginationParams, ok bool) {
	pageStr, limitStr := c.QueryParam("page"), c.QueryParam("limit")
	if pageStr == "" && limitStr == "" {
		return PaginationParams{}, false
	}

	page, _ := strconv.Atoi(pageStr)
	pageSize, _ := strconv.Atoi(limitStr)

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}, true
}

// Paginate cuts the requested page out of items.
func Paginate[T any](items []T, p PaginationParams) []T {
	return lo.Slice(items, p.Offset, p.Offset+p.PageSize)
}

// OptionalInt parses a query value; empty or malformed input yields nil.
func OptionalInt(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalFloat parses a query value; empty or malformed input yields nil.
func OptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
