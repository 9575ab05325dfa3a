package controller

import (
	"errors"
	"time"

	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/model"
	"estepage_storefront/internal/view"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/metrics"
	"estepage_storefront/pkg/utils/catalog"
	"estepage_storefront/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func propertyID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if err := validation.ValidatePropertyID(id); err != nil {
		return "", err
	}
	return id, nil
}

func invalidPropertyID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid property ID",
	})
}

// upstreamStatus maps a property API failure onto our response code.
func upstreamStatus(err error) int {
	if errors.Is(err, api.ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadGateway
}

// GetPropertyDetail loads the detail page. A failed load answers with the
// redirect target instead of the property.
func GetPropertyDetail(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	notices := &noticeCollector{}
	detail := newDetail(c, id, notices)
	defer detail.Close()

	if err := detail.Load(c.UserContext()); err != nil {
		return c.Status(upstreamStatus(err)).JSON(fiber.Map{
			"error":   "Failed to load property details",
			"view":    detail.View(svc.BaseURL),
			"notices": notices.list(),
		})
	}

	metrics.PropertyViews.Inc()
	recordView(c, id)

	return c.JSON(fiber.Map{
		"view":     detail.View(svc.BaseURL),
		"features": featureLabels(detail.Property()),
		"notices":  notices.list(),
		"user":     middleware.Auth(c).GetPublicProfile(),
	})
}

// featureLabels pairs each amenity value with its display label.
func featureLabels(p *model.Property) map[string][]catalog.Option {
	label := func(values []string) []catalog.Option {
		out := make([]catalog.Option, 0, len(values))
		for _, v := range values {
			out = append(out, catalog.Option{Value: v, Label: catalog.FeatureLabel(v)})
		}
		return out
	}
	if p == nil {
		return map[string][]catalog.Option{}
	}
	return map[string][]catalog.Option{
		"outdoor":  label(p.Features.Outdoor),
		"indoor":   label(p.Features.Indoor),
		"location": label(p.Features.Location),
	}
}

func recordView(c *fiber.Ctx, id string) {
	t, err := tracker()
	if err != nil {
		return
	}
	var userID *string
	if auth := middleware.Auth(c); auth.IsAuthenticated && auth.User != nil {
		uid := auth.User.ID
		userID = &uid
	}
	_, err = t.RecordView(c.UserContext(), model.PropertyView{
		PropertyID: id,
		UserID:     userID,
		VisitorID:  middleware.VisitorID(c),
		IP:         c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
		ViewedAt:   time.Now(),
	})
	if err != nil {
		svc.Logger.Warn("Could not record property view", zap.String("property_id", id), zap.Error(err))
	}
}

// GetGallery navigates a property's images.
// ?index=N selects, ?move=next|prev steps, ?lightbox=true opens the lightbox.
func GetGallery(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	p, err := svc.Properties.GetPropertyByID(c.UserContext(), id)
	if err != nil {
		return c.Status(upstreamStatus(err)).JSON(fiber.Map{
			"error": "Failed to load property details",
		})
	}

	g := view.NewGallery(p.Images).Select(c.QueryInt("index", 0))
	if c.QueryBool("lightbox", false) {
		g = g.OpenLightbox()
	}
	switch c.Query("move") {
	case "":
	case "next":
		g = g.Next()
	case "prev":
		g = g.Prev()
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move must be next or prev",
		})
	}

	return c.JSON(g.View())
}

// GetShareLinks builds the share dialog for a property.
func GetShareLinks(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	p, err := svc.Properties.GetPropertyByID(c.UserContext(), id)
	if err != nil {
		return c.Status(upstreamStatus(err)).JSON(fiber.Map{
			"error": "Failed to load property details",
		})
	}

	priceLabel := svc.Prices.Format(p.Price)
	pageURL := svc.BaseURL + view.PropertyPath(p.ID, p.Title)
	return c.JSON(fiber.Map{
		"url":         pageURL,
		"title":       p.Title,
		"priceLabel":  priceLabel,
		"text":        view.ShareText(p.Title, priceLabel),
		"image":       p.CoverImage(),
		"links":       view.BuildShareLinks(pageURL, p.Title, priceLabel),
		"copyResetMs": view.CopiedResetDelay.Milliseconds(),
	})
}

// ToggleFavorite flips the favorite flag and returns the service's value.
func ToggleFavorite(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	notices := &noticeCollector{}
	detail := newDetail(c, id, notices)
	defer detail.Close()

	fav, err := detail.ToggleFavorite(c.UserContext())
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"isFavorite": fav,
			"notices":    notices.list(),
		})
	case errors.Is(err, view.ErrLoginRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "Please log in to add properties to your favorites",
			"notices": notices.list(),
		})
	default:
		// The previous value is unknown here; the client keeps what it shows.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to update favorites",
			"notices": notices.list(),
		})
	}
}

// SendInquiry submits the contact form. Missing fields never reach the API.
func SendInquiry(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	input := new(view.InquiryState)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	notices := &noticeCollector{}
	detail := newDetail(c, id, notices)
	defer detail.Close()

	form := detail.Inquiry()
	form.Open()
	form.Update(*input)

	err = detail.SubmitInquiry(c.UserContext())
	var verr *view.ValidationError
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Your inquiry has been sent successfully. The agent will contact you soon.",
			"form":    form.View(),
			"notices": notices.list(),
		})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"missing": verr.Missing,
			"form":    form.View(),
			"notices": notices.list(),
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to send inquiry. Please try again.",
			"form":    form.View(),
			"notices": notices.list(),
		})
	}
}

// GetPropertyStats reports recorded views for a property.
func GetPropertyStats(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return invalidPropertyID(c)
	}

	t, err := tracker()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Statistics are not available",
		})
	}

	stats, err := t.ViewStats(c.UserContext(), id)
	if err != nil {
		svc.Logger.Error("Could not load property stats", zap.String("property_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch statistics",
		})
	}
	return c.JSON(stats)
}
