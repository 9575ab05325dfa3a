package controller

import (
	"estepage_storefront/pkg/utils/location"

	"github.com/gofiber/fiber/v2"
)

const maxSuggestions = 8

func GetLocationData(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"emirates": location.GetEmirates(),
	})
}

func GetCommunitiesByEmirate(c *fiber.Ctx) error {
	code := c.Params("emirateCode")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Emirate code is required",
		})
	}

	return c.JSON(fiber.Map{
		"communities": location.GetCommunitiesByEmirate(code),
	})
}

// SuggestLocations feeds the hero's location field. ?q= is required.
func SuggestLocations(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}
	limit := c.QueryInt("limit", maxSuggestions)
	if limit <= 0 || limit > maxSuggestions {
		limit = maxSuggestions
	}
	return c.JSON(fiber.Map{
		"suggestions": location.Suggest(q, limit),
	})
}
