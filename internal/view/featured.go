package view

import (
	"strconv"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/utils/format"

	"github.com/gosimple/slug"
)

// FeaturedCount is how many cards the home page always shows.
const FeaturedCount = 3

// Card is a property summary for grids and lists.
type Card struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	PriceLabel   string  `json:"priceLabel"`
	Category     string  `json:"category"`
	PropertyType string  `json:"propertyType"`
	Beds         int     `json:"beds"`
	Baths        int     `json:"baths"`
	Area         float64 `json:"area"`
	URL          string  `json:"url"`
	Placeholder  bool    `json:"placeholder"`
}

// PropertyPath is the canonical detail page path, slugged by title.
func PropertyPath(id, title string) string {
	path := "/property/" + id
	if s := slug.Make(title); s != "" {
		path += "/" + s
	}
	return path
}

func NewCard(p model.Property, prices *format.PriceFormatter) Card {
	return Card{
		ID:           p.ID,
		Title:        p.Title,
		Location:     p.DisplayLocation(),
		Image:        p.CoverImage(),
		Price:        p.Price,
		PriceLabel:   prices.Format(p.Price),
		Category:     string(p.Category),
		PropertyType: string(p.PropertyType),
		Beds:         p.Beds,
		Baths:        p.Baths,
		Area:         p.Area,
		URL:          PropertyPath(p.ID, p.Title),
	}
}

func Cards(properties []model.Property, prices *format.PriceFormatter) []Card {
	cards := make([]Card, 0, len(properties))
	for _, p := range properties {
		cards = append(cards, NewCard(p, prices))
	}
	return cards
}

func placeholderCard(n int) Card {
	return Card{
		ID:          "placeholder-" + strconv.Itoa(n),
		Title:       "New listing coming soon",
		Location:    "Stay tuned",
		URL:         "/properties",
		Placeholder: true,
	}
}

// Featured always yields FeaturedCount cards: real ones first, then placeholders.
func Featured(properties []model.Property, prices *format.PriceFormatter) []Card {
	if len(properties) > FeaturedCount {
		properties = properties[:FeaturedCount]
	}
	cards := Cards(properties, prices)
	for i := len(cards); i < FeaturedCount; i++ {
		cards = append(cards, placeholderCard(i+1))
	}
	return cards
}
