package view

import "fmt"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortAreaAsc   SortKey = "area-asc"
	SortAreaDesc  SortKey = "area-desc"
	SortBedsAsc   SortKey = "beds-asc"
	SortBedsDesc  SortKey = "beds-desc"
)

// SortKeys lists the recognized keys in display order.
var SortKeys = []SortKey{
	SortNewest, SortOldest,
	SortPriceAsc, SortPriceDesc,
	SortAreaAsc, SortAreaDesc,
	SortBedsAsc, SortBedsDesc,
}

// API field/order pairs. Ordering itself is the property API's business.
var sortParams = map[SortKey][2]string{
	SortNewest:    {"createdAt", "desc"},
	SortOldest:    {"createdAt", "asc"},
	SortPriceAsc:  {"price", "asc"},
	SortPriceDesc: {"price", "desc"},
	SortAreaAsc:   {"area", "asc"},
	SortAreaDesc:  {"area", "desc"},
	SortBedsAsc:   {"beds", "asc"},
	SortBedsDesc:  {"beds", "desc"},
}

func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	k := SortKey(s)
	if _, ok := sortParams[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
	return k, nil
}

// SortParams returns the sortBy and order values the property API expects.
func SortParams(k SortKey) (sortBy, order string) {
	p, ok := sortParams[k]
	if !ok {
		p = sortParams[SortNewest]
	}
	return p[0], p[1]
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "":
		return ViewGrid, nil
	case ViewGrid, ViewList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
}

// SortListener receives user intent from a SortBar.
type SortListener interface {
	SortChanged(SortKey)
	ViewModeChanged(ViewMode)
	FilterToggled()
}

// SortBar is a controlled view: it renders the caller's state and forwards
// intent without keeping any state of its own.
type SortBar struct {
	SortBy       SortKey  `json:"sortBy"`
	ViewMode     ViewMode `json:"viewMode"`
	TotalResults int      `json:"totalResults"`
	listener     SortListener
}

func NewSortBar(sortBy SortKey, mode ViewMode, totalResults int, listener SortListener) SortBar {
	return SortBar{
		SortBy:       sortBy,
		ViewMode:     mode,
		TotalResults: totalResults,
		listener:     listener,
	}
}

// SelectSort forwards k; the bar itself keeps showing the caller's SortBy.
func (b SortBar) SelectSort(k SortKey) error {
	if _, ok := sortParams[k]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, k)
	}
	if b.listener != nil {
		b.listener.SortChanged(k)
	}
	return nil
}

func (b SortBar) SelectViewMode(m ViewMode) error {
	if m != ViewGrid && m != ViewList {
		return fmt.Errorf("%w: %q", ErrUnknownViewMode, m)
	}
	if b.listener != nil {
		b.listener.ViewModeChanged(m)
	}
	return nil
}

func (b SortBar) ToggleFilters() {
	if b.listener != nil {
		b.listener.FilterToggled()
	}
}

func (b SortBar) ResultLabel() string {
	if b.TotalResults == 1 {
		return "1 property found"
	}
	return fmt.Sprintf("%d properties found", b.TotalResults)
}
