package controller

import (
	"bufio"
	"encoding/json"
	"fmt"

	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/view"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/metrics"
	"estepage_storefront/pkg/utils/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetHome composes the landing page. A failing featured fetch only costs
// the real cards; placeholders fill the row.
func GetHome(c *fiber.Ctx) error {
	list, err := svc.Properties.GetAllProperties(c.UserContext(), api.FeaturedOptions(view.FeaturedCount))
	var featured []view.Card
	if err != nil {
		svc.Logger.Warn("Could not load featured properties", zap.Error(err))
		featured = view.Featured(nil, svc.Prices)
	} else {
		featured = view.Featured(list.Properties, svc.Prices)
	}

	cat := catalog.Get()
	return c.JSON(fiber.Map{
		"hero": fiber.Map{
			"slides":     cat.HeroSlides,
			"intervalMs": svc.HeroInterval.Milliseconds(),
			"categories": view.SearchCategories,
			"searchPath": view.SearchPath,
		},
		"categories": cat.Categories,
		"featured":   featured,
		"user":       middleware.Auth(c).GetPublicProfile(),
	})
}

// GetCatalog serves the static option lists for the search and filter UI.
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"catalog":  catalog.Get(),
		"filters":  view.EmptyFilters(),
		"sections": view.NewFilterSidebar(view.EmptyFilters(), nil).Sections(),
	})
}

type slideEvent struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// StreamHero pushes the hero carousel position as server-sent events.
// ?limit=N ends the stream after N events.
func StreamHero(c *fiber.Ctx) error {
	slides := catalog.GetHeroSlides()
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid limit",
		})
	}

	ticks := make(chan int, 1)
	carousel := view.NewCarousel(len(slides), svc.HeroInterval, func(i int) {
		select {
		case ticks <- i:
		default:
		}
	})

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		metrics.HeroStreams.Inc()
		defer metrics.HeroStreams.Dec()
		defer carousel.Stop()

		sent := 0
		send := func(i int) bool {
			data, _ := json.Marshal(slideEvent{Index: i, Count: len(slides)})
			if _, err := fmt.Fprintf(w, "event: slide\ndata: %s\n\n", data); err != nil {
				return false
			}
			if err := w.Flush(); err != nil {
				return false
			}
			sent++
			return limit == 0 || sent < limit
		}

		if !send(carousel.Index()) || len(slides) < 2 {
			return
		}
		carousel.Start()
		for i := range ticks {
			if !send(i) {
				return
			}
		}
	})
	return nil
}
