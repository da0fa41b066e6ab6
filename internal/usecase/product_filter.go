package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"cwrs/internal/domain/entity"
)

// ProductFilter narrows the buyer catalog. Zero values disable a criterion.
type ProductFilter struct {
	Name         string
	QuantityMin  *int
	WeightMin    *float64
	MaterialType string
}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// ParseWeight extracts the numeric part of free-text weights such as "5kg".
// Text without any digits counts as zero; ok is false when the remaining
// characters do not form a number.
func ParseWeight(weight string) (value float64, ok bool) {
	digits := nonNumeric.ReplaceAllString(weight, "")
	if digits == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f ProductFilter) Matches(p *entity.Product) bool {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}

	// a missing or zero quantity never excludes a product
	if f.QuantityMin != nil && p.Quantity != nil && *p.Quantity != 0 && *p.Quantity < *f.QuantityMin {
		return false
	}

	if f.WeightMin != nil && strings.TrimSpace(p.Weight) != "" {
		if w, ok := ParseWeight(p.Weight); ok && w < *f.WeightMin {
			return false
		}
	}

	if f.MaterialType != "" && (p.MaterialType == "" || !containsFold(p.MaterialType, f.MaterialType)) {
		return false
	}

	return true
}
