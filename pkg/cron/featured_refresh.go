package cron

import (
	"context"
	"fmt"
	"time"

	"estepage_storefront/pkg/api"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher overwrites a cached listing with fresh data.
type Refresher interface {
	Refresh(ctx context.Context, opts api.ListOptions) (*api.PropertyList, error)
}

const refreshTimeout = 30 * time.Second

// InitFeaturedRefreshCron keeps the featured listing warm in the cache. The
// returned scheduler is already started; Stop it on shutdown.
func InitFeaturedRefreshCron(spec string, opts api.ListOptions, r Refresher, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	job := func() { refreshFeatured(r, opts, log) }
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("could not schedule featured refresh %q: %w", spec, err)
	}

	go job()
	c.Start()
	return c, nil
}

func refreshFeatured(r Refresher, opts api.ListOptions, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	list, err := r.Refresh(ctx, opts)
	if err != nil {
		log.Warn("Featured refresh failed", zap.Error(err))
		return
	}
	log.Debug("Featured listing refreshed", zap.Int("count", len(list.Properties)))
}
