package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyView is a single detail page visit
type PropertyView struct {
	gorm.Model
	PropertyID string    `json:"property_id" gorm:"index;not null"`
	UserID     *string   `json:"user_id" gorm:"index"`    // signed-in visitor (optional)
	VisitorID  string    `json:"visitor_id" gorm:"index"` // storefront visitor cookie
	IP         string    `json:"ip" gorm:"index"`
	UserAgent  string    `json:"user_agent"`
	ViewedAt   time.Time `json:"viewed_at" gorm:"index"`
}

// SearchLog keeps the filters a visitor searched with
type SearchLog struct {
	gorm.Model
	VisitorID    string         `json:"visitor_id" gorm:"index"`
	Search       string         `json:"search"`
	Location     string         `json:"location"`
	Category     string         `json:"category"`
	SortBy       string         `json:"sort_by"`
	Filters      datatypes.JSON `json:"filters"`
	TotalResults int            `json:"total_results"`
}
