package controller

import (
	"encoding/json"
	"errors"
	"net/url"

	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/model"
	"estepage_storefront/internal/view"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 12
	maxPageSize     = 60
)

// SubmitSearch turns the hero form into the results navigation target.
func SubmitSearch(c *fiber.Ctx) error {
	q := new(view.SearchQuery)
	if err := c.BodyParser(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := q.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filters := view.EmptyFilters()
	filters.Category = view.FilterCategory(q.Category)

	return c.JSON(fiber.Map{
		"path":    q.Path(),
		"query":   q.Encode(),
		"filters": filters,
	})
}

// SearchProperties serves the results page: sidebar state, sort bar and
// the matching cards.
func SearchProperties(c *fiber.Ctx) error {
	raw, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query string",
		})
	}

	query := view.ParseSearchQuery(raw)
	filters := view.ParseFilters(raw)
	// The hero sends the API category ("For Rent"); the sidebar its own value.
	if filters.Category == view.FilterAll && query.Category != "" {
		filters.Category = view.FilterCategory(query.Category)
	}

	sortKey, err := view.ParseSortKey(raw.Get("sort"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	mode, err := view.ParseViewMode(raw.Get("view"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	params := filters.Params()
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	sortBy, order := view.SortParams(sortKey)

	list, err := svc.Properties.GetAllProperties(c.UserContext(), api.ListOptions{
		Limit:   limit,
		Page:    page,
		SortBy:  sortBy,
		Order:   order,
		Filters: params,
	})
	if err != nil {
		svc.Logger.Error("Could not search properties", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to load properties",
		})
	}

	metrics.Searches.WithLabelValues(string(sortKey)).Inc()
	logSearch(c, query, filters, sortKey, list.Total)

	bar := view.NewSortBar(sortKey, mode, list.Total, nil)
	return c.JSON(fiber.Map{
		"query":       query,
		"filters":     filters,
		"activeCount": filters.ActiveCount(),
		"sortBar": fiber.Map{
			"sortBy":       bar.SortBy,
			"viewMode":     bar.ViewMode,
			"totalResults": bar.TotalResults,
			"label":        bar.ResultLabel(),
		},
		"properties": view.Cards(list.Properties, svc.Prices),
		"page":       page,
		"limit":      limit,
	})
}

func logSearch(c *fiber.Ctx, q view.SearchQuery, filters view.FilterState, sortKey view.SortKey, total int) {
	t, err := tracker()
	if err != nil {
		return
	}
	encoded, err := json.Marshal(filters)
	if err != nil {
		return
	}
	entry := model.SearchLog{
		VisitorID:    middleware.VisitorID(c),
		Search:       q.Search,
		Location:     q.Location,
		Category:     string(q.Category),
		SortBy:       string(sortKey),
		Filters:      encoded,
		TotalResults: total,
	}
	if err := t.LogSearch(c.UserContext(), entry); err != nil {
		svc.Logger.Warn("Could not log search", zap.Error(err))
	}
}

type filterRequest struct {
	State  *view.FilterState `json:"state"`
	Action view.Action       `json:"action"`
}

// ReduceFilters applies one sidebar action and returns the new state.
func ReduceFilters(c *fiber.Ctx) error {
	input := new(filterRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	state := view.EmptyFilters()
	if input.State != nil {
		state = normalizeFilters(*input.State)
	}

	var latest view.FilterState
	sidebar := view.NewFilterSidebar(state, view.FilterListenerFunc(func(s view.FilterState) {
		latest = s
	}))
	if err := sidebar.Dispatch(input.Action); err != nil {
		status := fiber.StatusBadRequest
		if !isFilterError(err) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"state":       latest,
		"activeCount": latest.ActiveCount(),
		"params":      latest.Params().Encode(),
	})
}

// normalizeFilters puts unknown enum values back on their sentinel, the
// same way ParseFilters treats a query string.
func normalizeFilters(in view.FilterState) view.FilterState {
	out := in
	out.Category, out.Furnishing = view.FilterAll, view.FilterAll
	if next, err := out.SetCategory(in.Category); err == nil {
		out = next
	}
	if next, err := out.SetFurnishing(in.Furnishing); err == nil {
		out = next
	}
	if out.PropertyType == nil {
		out.PropertyType = []string{}
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	return out
}

func isFilterError(err error) bool {
	return errors.Is(err, view.ErrUnknownAction) ||
		errors.Is(err, view.ErrUnknownFilterField) ||
		errors.Is(err, view.ErrInvalidFilterValue)
}
