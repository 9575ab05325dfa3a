package view

import (
	"net/url"
	"testing"

	"estepage_storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_EncodeOmitsEmptyFields(t *testing.T) {
	q := SearchQuery{Search: "villa", Location: "", Category: model.CategoryForRent}

	enc := q.Encode()
	assert.Contains(t, enc, "search=villa&category=For+Rent")
	assert.NotContains(t, enc, "location")
	assert.Equal(t, "/search?search=villa&category=For+Rent", q.Path())
}

func TestSearchQuery_EncodeAllFields(t *testing.T) {
	q := SearchQuery{Search: "sea view", Location: "Dubai Marina", Category: model.CategoryHolidayRental}
	assert.Equal(t, "search=sea+view&location=Dubai+Marina&category=Holiday+Rental", q.Encode())
}

func TestSearchQuery_EmptyPath(t *testing.T) {
	assert.Equal(t, "", SearchQuery{Search: "   "}.Encode())
	assert.Equal(t, SearchPath, SearchQuery{}.Path())
}

func TestSearchQuery_WithCategoryIsExclusive(t *testing.T) {
	q, err := SearchQuery{}.WithCategory(model.CategoryForSale)
	require.NoError(t, err)
	q, err = q.WithCategory(model.CategoryForRent)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryForRent, q.Category)

	_, err = q.WithCategory("Auction")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.ErrorIs(t, SearchQuery{Category: "Auction"}.Validate(), ErrInvalidCategory)
}

func TestParseSearchQuery(t *testing.T) {
	v, err := url.ParseQuery("search=villa&category=For+Rent")
	require.NoError(t, err)

	q := ParseSearchQuery(v)
	assert.Equal(t, SearchQuery{Search: "villa", Category: model.CategoryForRent}, q)
	assert.Equal(t, model.Category(""), ParseSearchQuery(url.Values{"category": {"Auction"}}).Category)
}

func TestFilterCategory(t *testing.T) {
	assert.Equal(t, FilterCategorySale, FilterCategory(model.CategoryForSale))
	assert.Equal(t, FilterCategoryRent, FilterCategory(model.CategoryForRent))
	assert.Equal(t, FilterCategoryHoliday, FilterCategory(model.CategoryHolidayRental))
	assert.Equal(t, FilterAll, FilterCategory(""))
}
