package view

import (
	"fmt"
	"net/url"
	"strings"
)

// Scalar sentinels meaning "no constraint".
const (
	FilterAll = "all"
	NoFilter  = ""
)

// Category filter values
const (
	FilterCategorySale    = "sale"
	FilterCategoryRent    = "rent"
	FilterCategoryHoliday = "holiday"
)

// Furnishing filter values
const (
	FurnishingFurnished     = "furnished"
	FurnishingUnfurnished   = "unfurnished"
	FurnishingSemiFurnished = "semi-furnished"
)

type FilterField string

const (
	FieldCategory     FilterField = "category"
	FieldPropertyType FilterField = "propertyType"
	FieldPriceMin     FilterField = "priceMin"
	FieldPriceMax     FilterField = "priceMax"
	FieldBedrooms     FilterField = "bedrooms"
	FieldBathrooms    FilterField = "bathrooms"
	FieldAreaMin      FilterField = "areaMin"
	FieldAreaMax      FilterField = "areaMax"
	FieldFurnishing   FilterField = "furnishing"
	FieldFeatures     FilterField = "features"
)

// FilterState is the sidebar's full filter selection. Sets keep insertion order.
type FilterState struct {
	Category     string   `json:"category"`
	PropertyType []string `json:"propertyType"`
	PriceMin     string   `json:"priceMin"`
	PriceMax     string   `json:"priceMax"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	AreaMin      string   `json:"areaMin"`
	AreaMax      string   `json:"areaMax"`
	Furnishing   string   `json:"furnishing"`
	Features     []string `json:"features"`
}

// EmptyFilters is the canonical cleared state.
func EmptyFilters() FilterState {
	return FilterState{
		Category:     FilterAll,
		PropertyType: []string{},
		Furnishing:   FilterAll,
		Features:     []string{},
	}
}

// IsCleared reports whether every field sits on its sentinel.
func (f FilterState) IsCleared() bool {
	return f.Category == FilterAll &&
		f.Furnishing == FilterAll &&
		f.PriceMin == NoFilter && f.PriceMax == NoFilter &&
		f.AreaMin == NoFilter && f.AreaMax == NoFilter &&
		f.Bedrooms == NoFilter && f.Bathrooms == NoFilter &&
		len(f.PropertyType) == 0 && len(f.Features) == 0
}

// ActiveCount is the number of constrained fields, shown on the mobile filter toggle.
func (f FilterState) ActiveCount() int {
	n := 0
	for _, s := range []string{f.PriceMin, f.PriceMax, f.AreaMin, f.AreaMax, f.Bedrooms, f.Bathrooms} {
		if s != NoFilter {
			n++
		}
	}
	if f.Category != FilterAll {
		n++
	}
	if f.Furnishing != FilterAll {
		n++
	}
	return n + len(f.PropertyType) + len(f.Features)
}

func (f FilterState) clone() FilterState {
	out := f
	out.PropertyType = append([]string{}, f.PropertyType...)
	out.Features = append([]string{}, f.Features...)
	return out
}

func (f FilterState) SetCategory(v string) (FilterState, error) {
	switch v {
	case FilterAll, FilterCategorySale, FilterCategoryRent, FilterCategoryHoliday:
	default:
		return f, fmt.Errorf("%w: category %q", ErrInvalidFilterValue, v)
	}
	out := f.clone()
	out.Category = v
	return out, nil
}

func (f FilterState) SetFurnishing(v string) (FilterState, error) {
	switch v {
	case FilterAll, FurnishingFurnished, FurnishingUnfurnished, FurnishingSemiFurnished:
	default:
		return f, fmt.Errorf("%w: furnishing %q", ErrInvalidFilterValue, v)
	}
	out := f.clone()
	out.Furnishing = v
	return out, nil
}

// SetRooms sets bedrooms or bathrooms; "all" normalizes to the empty sentinel.
func (f FilterState) SetRooms(field FilterField, v string) (FilterState, error) {
	if v == FilterAll {
		v = NoFilter
	}
	out := f.clone()
	switch field {
	case FieldBedrooms:
		out.Bedrooms = v
	case FieldBathrooms:
		out.Bathrooms = v
	default:
		return f, fmt.Errorf("%w: %q is not a room field", ErrUnknownFilterField, field)
	}
	return out, nil
}

// SetRange stores raw range text; no numeric or min/max checks happen here.
func (f FilterState) SetRange(field FilterField, text string) (FilterState, error) {
	out := f.clone()
	switch field {
	case FieldPriceMin:
		out.PriceMin = text
	case FieldPriceMax:
		out.PriceMax = text
	case FieldAreaMin:
		out.AreaMin = text
	case FieldAreaMax:
		out.AreaMax = text
	default:
		return f, fmt.Errorf("%w: %q is not a range field", ErrUnknownFilterField, field)
	}
	return out, nil
}

// ToggleArrayMember removes value when present and appends it otherwise.
func (f FilterState) ToggleArrayMember(field FilterField, value string) (FilterState, error) {
	out := f.clone()
	switch field {
	case FieldPropertyType:
		out.PropertyType = toggle(out.PropertyType, value)
	case FieldFeatures:
		out.Features = toggle(out.Features, value)
	default:
		return f, fmt.Errorf("%w: %q is not a set field", ErrUnknownFilterField, field)
	}
	return out, nil
}

// ClearAll ignores the receiver.
func (f FilterState) ClearAll() FilterState {
	return EmptyFilters()
}

func toggle(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, value)
}

// Params serializes the active constraints for the property API.
func (f FilterState) Params() url.Values {
	q := url.Values{}
	if f.Category != FilterAll && f.Category != NoFilter {
		q.Set(string(FieldCategory), f.Category)
	}
	if f.Furnishing != FilterAll && f.Furnishing != NoFilter {
		q.Set(string(FieldFurnishing), f.Furnishing)
	}
	scalars := []struct {
		field FilterField
		value string
	}{
		{FieldPriceMin, f.PriceMin},
		{FieldPriceMax, f.PriceMax},
		{FieldBedrooms, f.Bedrooms},
		{FieldBathrooms, f.Bathrooms},
		{FieldAreaMin, f.AreaMin},
		{FieldAreaMax, f.AreaMax},
	}
	for _, s := range scalars {
		if v := strings.TrimSpace(s.value); v != NoFilter {
			q.Set(string(s.field), v)
		}
	}
	if len(f.PropertyType) > 0 {
		q.Set(string(FieldPropertyType), strings.Join(f.PropertyType, ","))
	}
	if len(f.Features) > 0 {
		q.Set(string(FieldFeatures), strings.Join(f.Features, ","))
	}
	return q
}

// ParseFilters reads a FilterState back from query parameters. Unknown
// enum values fall back to the sentinel.
func ParseFilters(q url.Values) FilterState {
	f := EmptyFilters()
	if next, err := f.SetCategory(q.Get(string(FieldCategory))); err == nil {
		f = next
	}
	if next, err := f.SetFurnishing(q.Get(string(FieldFurnishing))); err == nil {
		f = next
	}
	f.PriceMin = q.Get(string(FieldPriceMin))
	f.PriceMax = q.Get(string(FieldPriceMax))
	f.AreaMin = q.Get(string(FieldAreaMin))
	f.AreaMax = q.Get(string(FieldAreaMax))
	f, _ = f.SetRooms(FieldBedrooms, q.Get(string(FieldBedrooms)))
	f, _ = f.SetRooms(FieldBathrooms, q.Get(string(FieldBathrooms)))
	f.PropertyType = splitSet(q.Get(string(FieldPropertyType)))
	f.Features = splitSet(q.Get(string(FieldFeatures)))
	return f
}

func splitSet(raw string) []string {
	out := []string{}
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = toggleOnce(out, v)
	}
	return out
}

func toggleOnce(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

// ActionType names a sidebar mutation.
type ActionType string

const (
	ActionSetCategory   ActionType = "setCategory"
	ActionSetFurnishing ActionType = "setFurnishing"
	ActionSetRooms      ActionType = "setRooms"
	ActionSetRange      ActionType = "setRange"
	ActionToggle        ActionType = "toggle"
	ActionClearAll      ActionType = "clearAll"
)

// Action is the message a filter view sends to its owning sidebar.
type Action struct {
	Type  ActionType  `json:"type"`
	Field FilterField `json:"field,omitempty"`
	Value string      `json:"value,omitempty"`
}

// Reduce applies a to state and returns the new state.
func Reduce(state FilterState, a Action) (FilterState, error) {
	switch a.Type {
	case ActionSetCategory:
		return state.SetCategory(a.Value)
	case ActionSetFurnishing:
		return state.SetFurnishing(a.Value)
	case ActionSetRooms:
		return state.SetRooms(a.Field, a.Value)
	case ActionSetRange:
		return state.SetRange(a.Field, a.Value)
	case ActionToggle:
		return state.ToggleArrayMember(a.Field, a.Value)
	case ActionClearAll:
		return state.ClearAll(), nil
	}
	return state, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

// FilterListener receives the full state after every sidebar mutation.
type FilterListener interface {
	FilterChanged(FilterState)
}

type FilterListenerFunc func(FilterState)

func (f FilterListenerFunc) FilterChanged(s FilterState) { f(s) }

// Sidebar sections
const (
	SectionCategory     = "category"
	SectionPropertyType = "propertyType"
	SectionPrice        = "price"
	SectionBedrooms     = "bedrooms"
	SectionBathrooms    = "bathrooms"
	SectionArea         = "area"
	SectionFurnishing   = "furnishing"
	SectionFeatures     = "features"
)

func defaultSections() map[string]bool {
	return map[string]bool{
		SectionCategory:     true,
		SectionPropertyType: true,
		SectionPrice:        true,
		SectionBedrooms:     true,
		SectionBathrooms:    true,
		SectionArea:         true,
		SectionFurnishing:   true,
		SectionFeatures:     false,
	}
}

// FilterSidebar exclusively owns a FilterState. Every successful mutation
// notifies the listener with the full new state, even when nothing changed.
type FilterSidebar struct {
	state    FilterState
	expanded map[string]bool
	listener FilterListener
}

// NewFilterSidebar mounts a sidebar and notifies the listener once.
func NewFilterSidebar(initial FilterState, listener FilterListener) *FilterSidebar {
	s := &FilterSidebar{
		state:    initial.clone(),
		expanded: defaultSections(),
		listener: listener,
	}
	s.notify()
	return s
}

func (s *FilterSidebar) State() FilterState {
	return s.state.clone()
}

func (s *FilterSidebar) Dispatch(a Action) error {
	next, err := Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	s.notify()
	return nil
}

func (s *FilterSidebar) SetCategory(v string) error {
	return s.Dispatch(Action{Type: ActionSetCategory, Value: v})
}

func (s *FilterSidebar) SetFurnishing(v string) error {
	return s.Dispatch(Action{Type: ActionSetFurnishing, Value: v})
}

func (s *FilterSidebar) ToggleArrayMember(field FilterField, value string) error {
	return s.Dispatch(Action{Type: ActionToggle, Field: field, Value: value})
}

func (s *FilterSidebar) ClearAll() {
	_ = s.Dispatch(Action{Type: ActionClearAll})
}

// ToggleSection flips a section's expanded flag. Cosmetic only.
func (s *FilterSidebar) ToggleSection(name string) {
	s.expanded[name] = !s.Expanded(name)
}

func (s *FilterSidebar) Expanded(name string) bool {
	v, ok := s.expanded[name]
	if !ok {
		return true
	}
	return v
}

func (s *FilterSidebar) Sections() map[string]bool {
	out := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		out[k] = v
	}
	return out
}

func (s *FilterSidebar) notify() {
	if s.listener != nil {
		s.listener.FilterChanged(s.state.clone())
	}
}
