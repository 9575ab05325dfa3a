package view

import (
	"fmt"
	"net/url"
	"strings"

	"estepage_storefront/internal/model"
)

const SearchPath = "/search"

// SearchQuery is what the hero search form submits.
type SearchQuery struct {
	Search   string         `json:"search"`
	Location string         `json:"location"`
	Category model.Category `json:"category"`
}

// SearchCategories are the hero tabs, in display order.
var SearchCategories = []model.Category{
	model.CategoryForSale,
	model.CategoryForRent,
	model.CategoryHolidayRental,
}

// WithCategory selects one tab; selecting replaces any previous choice.
func (q SearchQuery) WithCategory(c model.Category) (SearchQuery, error) {
	if c != "" && !validCategory(c) {
		return q, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	q.Category = c
	return q, nil
}

func validCategory(c model.Category) bool {
	for _, v := range SearchCategories {
		if v == c {
			return true
		}
	}
	return false
}

func (q SearchQuery) Validate() error {
	if q.Category != "" && !validCategory(q.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, q.Category)
	}
	return nil
}

// Encode serializes the non-empty fields in search, location, category order.
func (q SearchQuery) Encode() string {
	var parts []string
	add := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, key+"="+url.QueryEscape(value))
		}
	}
	add("search", q.Search)
	add("location", q.Location)
	add("category", string(q.Category))
	return strings.Join(parts, "&")
}

// Path is the navigation target for the results view.
func (q SearchQuery) Path() string {
	if enc := q.Encode(); enc != "" {
		return SearchPath + "?" + enc
	}
	return SearchPath
}

func ParseSearchQuery(v url.Values) SearchQuery {
	q := SearchQuery{
		Search:   strings.TrimSpace(v.Get("search")),
		Location: strings.TrimSpace(v.Get("location")),
	}
	if c := model.Category(v.Get("category")); validCategory(c) {
		q.Category = c
	}
	return q
}

// FilterCategory maps a hero tab onto the sidebar's category values.
func FilterCategory(c model.Category) string {
	switch c {
	case model.CategoryForSale:
		return FilterCategorySale
	case model.CategoryForRent:
		return FilterCategoryRent
	case model.CategoryHolidayRental:
		return FilterCategoryHoliday
	}
	return FilterAll
}
