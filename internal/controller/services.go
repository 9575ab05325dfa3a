package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/model"
	"estepage_storefront/internal/view"
	"estepage_storefront/pkg/cache"
	"estepage_storefront/pkg/database"
	"estepage_storefront/pkg/utils/format"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccountAPI is the part of the property API that acts for a signed-in user.
type AccountAPI interface {
	view.FavoriteService
	view.InquirySender
}

// Tracker records analytics. Calls are best-effort.
type Tracker interface {
	RecordView(ctx context.Context, v model.PropertyView) (bool, error)
	LogSearch(ctx context.Context, entry model.SearchLog) error
	ViewStats(ctx context.Context, propertyID string) (database.ViewStats, error)
}

type Services struct {
	Properties cache.Source
	// Account binds the account API to a session token ("" for anonymous).
	Account      func(token string) AccountAPI
	Tracker      Tracker
	Prices       *format.PriceFormatter
	BaseURL      string
	HeroInterval time.Duration
	Logger       *zap.Logger
}

var svc *Services

// Init installs the services every handler uses.
func Init(s *Services) {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Prices == nil {
		s.Prices = format.NewPriceFormatter("")
	}
	if s.HeroInterval <= 0 {
		s.HeroInterval = view.DefaultHeroInterval
	}
	svc = s
}

// noticeCollector gathers the toasts a view raises during one request.
type noticeCollector struct {
	mu      sync.Mutex
	notices []view.Notice
}

func (n *noticeCollector) Notify(x view.Notice) {
	n.mu.Lock()
	n.notices = append(n.notices, x)
	n.mu.Unlock()
}

func (n *noticeCollector) list() []view.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]view.Notice{}, n.notices...)
}

var errTrackingDisabled = errors.New("tracking disabled")

func tracker() (Tracker, error) {
	if svc.Tracker == nil {
		return nil, errTrackingDisabled
	}
	return svc.Tracker, nil
}

func newDetail(c *fiber.Ctx, id string, notices *noticeCollector) *view.PropertyDetail {
	auth := middleware.Auth(c)
	deps := view.DetailDeps{
		Properties: svc.Properties,
		Notifier:   notices,
		Prices:     svc.Prices,
		Logger:     svc.Logger,
	}
	if svc.Account != nil {
		account := svc.Account(auth.Token)
		deps.Favorites = account
		deps.Inquiries = account
	}
	return view.NewPropertyDetail(id, auth, deps)
}
