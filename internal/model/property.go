package model

import "strings"

// Property Types
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypeTownhouse  PropertyType = "Townhouse"
	PropertyTypePenthouse  PropertyType = "Penthouse"
	PropertyTypeLand       PropertyType = "Land"
	PropertyTypeCommercial PropertyType = "Commercial"
)

// Listing categories as the property API reports them
type Category string

const (
	CategoryForSale       Category = "For Sale"
	CategoryForRent       Category = "For Rent"
	CategoryHolidayRental Category = "Holiday Rental"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "Available"
	PropertyStatusSold      PropertyStatus = "Sold"
	PropertyStatusRented    PropertyStatus = "Rented"
	PropertyStatusReserved  PropertyStatus = "Reserved"
)

// Features groups amenity labels the way the detail page lists them.
type Features struct {
	Outdoor  []string `json:"outdoor"`
	Indoor   []string `json:"indoor"`
	Location []string `json:"location"`
}

// Agent is the listing contact embedded in every property.
type Agent struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	WhatsApp       string `json:"whatsapp"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	CompanyName    string `json:"companyName"`
}

// Property is the read-only listing shape served by the property API.
type Property struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	Category        Category       `json:"category"`
	Location        string         `json:"location"`
	LocationDisplay string         `json:"locationDisplay,omitempty"`
	Beds            int            `json:"beds"`
	Baths           int            `json:"baths"`
	Area            float64        `json:"area"`
	PropertyType    PropertyType   `json:"propertyType"`
	Furnished       string         `json:"furnished"`
	Status          PropertyStatus `json:"status"`
	YearBuilt       int            `json:"yearBuilt,omitempty"`
	Images          []string       `json:"images"`
	Features        Features       `json:"features"`
	Agent           Agent          `json:"agent"`
	VideoURL        string         `json:"videoUrl,omitempty"`
}

// DisplayLocation prefers the human readable location when the API sends one.
func (p *Property) DisplayLocation() string {
	if strings.TrimSpace(p.LocationDisplay) != "" {
		return p.LocationDisplay
	}
	return p.Location
}

// CoverImage returns the first image or an empty string.
func (p *Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
