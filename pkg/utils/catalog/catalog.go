package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed catalog.json
var raw []byte

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Slide struct {
	Image    string `json:"image"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// CategoryTile is a home page category card. Value is the API category.
type CategoryTile struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Catalog holds the static options the storefront renders.
type Catalog struct {
	HeroSlides       []Slide        `json:"heroSlides"`
	Categories       []CategoryTile `json:"categories"`
	FilterCategories []Option       `json:"filterCategories"`
	PropertyTypes    []Option       `json:"propertyTypes"`
	Rooms            []Option       `json:"rooms"`
	Furnishing       []Option       `json:"furnishing"`
	Features         []Option       `json:"features"`
	SortOptions      []Option       `json:"sortOptions"`
}

var (
	loaded  *Catalog
	loadErr error
	once    sync.Once
)

// Init parses the embedded catalog. Safe to call more than once.
func Init() error {
	once.Do(func() {
		var c Catalog
		if err := json.Unmarshal(raw, &c); err != nil {
			loadErr = fmt.Errorf("parse catalog: %w", err)
			return
		}
		if len(c.HeroSlides) == 0 {
			loadErr = fmt.Errorf("catalog has no hero slides")
			return
		}
		loaded = &c
	})
	return loadErr
}

// Get returns the catalog. Init must have succeeded.
func Get() *Catalog {
	return loaded
}

func GetHeroSlides() []Slide {
	if loaded == nil {
		return nil
	}
	return loaded.HeroSlides
}

// FeatureLabel maps a feature value to its label, or returns the value.
func FeatureLabel(value string) string {
	if loaded != nil {
		for _, f := range loaded.Features {
			if f.Value == value {
				return f.Label
			}
		}
	}
	return value
}
