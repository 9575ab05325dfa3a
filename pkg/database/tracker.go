package database

import (
	"context"
	"time"

	"estepage_storefront/internal/model"

	"gorm.io/gorm"
)

// ViewCooldown is how long repeat visits by one visitor count once.
const ViewCooldown = 24 * time.Hour

// ViewStats summarizes the recorded visits of one property.
type ViewStats struct {
	PropertyID  string `json:"propertyId"`
	TotalViews  int64  `json:"totalViews"`
	UniqueViews int64  `json:"uniqueViews"`
}

// Tracker records storefront analytics.
type Tracker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db, now: time.Now}
}

// RecordView stores a visit unless the same visitor saw the property within
// ViewCooldown. It reports whether a row was written.
func (t *Tracker) RecordView(ctx context.Context, view model.PropertyView) (bool, error) {
	now := t.now()
	if view.ViewedAt.IsZero() {
		view.ViewedAt = now
	}

	var count int64
	err := t.db.WithContext(ctx).Model(&model.PropertyView{}).
		Where("property_id = ? AND visitor_id = ? AND viewed_at > ?",
			view.PropertyID, view.VisitorID, now.Add(-ViewCooldown)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := t.db.WithContext(ctx).Create(&view).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tracker) LogSearch(ctx context.Context, entry model.SearchLog) error {
	return t.db.WithContext(ctx).Create(&entry).Error
}

func (t *Tracker) ViewStats(ctx context.Context, propertyID string) (ViewStats, error) {
	stats := ViewStats{PropertyID: propertyID}
	err := t.db.WithContext(ctx).Model(&model.PropertyView{}).
		Select("COUNT(*) AS total_views, COUNT(DISTINCT visitor_id) AS unique_views").
		Where("property_id = ?", propertyID).
		Scan(&stats).Error
	if err != nil {
		return ViewStats{}, err
	}
	stats.PropertyID = propertyID
	return stats, nil
}
