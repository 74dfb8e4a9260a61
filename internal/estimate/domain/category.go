package estimate

import (
	"regexp"
	"strings"
)

// Category classifies a line item's purpose. The set is closed: aggregation
// code relies on exactly these four buckets existing.
type Category string

const (
	CategoryReview   Category = "review"
	CategoryProduct  Category = "product"
	CategoryDelivery Category = "delivery"
	CategoryOther    Category = "other"
)

// Categories lists all categories in display order.
var Categories = []Category{CategoryReview, CategoryProduct, CategoryDelivery, CategoryOther}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryReview, CategoryProduct, CategoryDelivery, CategoryOther:
		return true
	default:
		return false
	}
}

var (
	reviewKeywords  = []string{"리뷰", "구매평"}
	deliveryKeyword = "배송"
	productKeywords = []string{"제품", "대행"}

	// Item names like "6/7 체험단" carry a day/month prefix and belong to
	// product cost rows in the vendor's sheets.
	dateLikePrefix = regexp.MustCompile(`^\d{1,2}/\d{1,2}`)
)

// Classify maps a line-item name to a category. Rules are ordered and the
// first match wins; an empty name falls through to CategoryOther.
func Classify(name string) Category {
	for _, keyword := range reviewKeywords {
		if strings.Contains(name, keyword) {
			return CategoryReview
		}
	}
	if strings.Contains(name, deliveryKeyword) {
		return CategoryDelivery
	}
	for _, keyword := range productKeywords {
		if strings.Contains(name, keyword) {
			return CategoryProduct
		}
	}
	if dateLikePrefix.MatchString(name) {
		return CategoryProduct
	}
	return CategoryOther
}
