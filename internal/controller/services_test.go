package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/database"
	"estepage_storefront/pkg/utils/catalog"
	"estepage_storefront/pkg/utils/format"
	"estepage_storefront/pkg/utils/jwt"
	"estepage_storefront/pkg/utils/location"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "controller-test-secret"

type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetAllProperties(ctx context.Context, opts api.ListOptions) (*api.PropertyList, error) {
	args := m.Called(ctx, opts)
	if l, ok := args.Get(0).(*api.PropertyList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSource) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSource) GetSimilarProperties(ctx context.Context, id string) ([]model.Property, error) {
	args := m.Called(ctx, id)
	if ps, ok := args.Get(0).([]model.Property); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAccount struct {
	mock.Mock
}

func (m *MockAccount) CheckFavorite(ctx context.Context, propertyID string) (bool, error) {
	args := m.Called(ctx, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccount) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	args := m.Called(ctx, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccount) SendInquiry(ctx context.Context, req model.InquiryRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) RecordView(ctx context.Context, v model.PropertyView) (bool, error) {
	args := m.Called(ctx, v)
	return args.Bool(0), args.Error(1)
}

func (m *MockTracker) LogSearch(ctx context.Context, entry model.SearchLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockTracker) ViewStats(ctx context.Context, propertyID string) (database.ViewStats, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(database.ViewStats), args.Error(1)
}

type fixture struct {
	app     *fiber.App
	source  *MockSource
	account *MockAccount
	tokens  []string
	signer  *jwt.Signer
}

// newFixture wires the handlers the same way the server does. tracker may
// be nil to run without analytics.
func newFixture(t *testing.T, tracker Tracker) *fixture {
	t.Helper()
	require.NoError(t, catalog.Init())
	require.NoError(t, location.Init())

	f := &fixture{
		source:  new(MockSource),
		account: new(MockAccount),
		signer:  jwt.NewSigner(testSecret),
	}
	Init(&Services{
		Properties: f.source,
		Account: func(token string) AccountAPI {
			f.tokens = append(f.tokens, token)
			return f.account
		},
		Tracker:      tracker,
		Prices:       format.NewPriceFormatter("AED"),
		BaseURL:      "https://example.com",
		HeroInterval: 10 * time.Millisecond,
		Logger:       zap.NewNop(),
	})

	app := fiber.New()
	group := app.Group("/api", middleware.Visitor(), middleware.Session(f.signer, zap.NewNop()))
	group.Get("/home", GetHome)
	group.Get("/catalog", GetCatalog)
	group.Get("/hero/stream", StreamHero)
	group.Post("/search", SubmitSearch)
	group.Get("/search", SearchProperties)
	group.Post("/filters", ReduceFilters)
	group.Get("/locations", GetLocationData)
	group.Get("/locations/suggest", SuggestLocations)
	group.Get("/locations/:emirateCode/communities", GetCommunitiesByEmirate)
	group.Get("/properties/:id", GetPropertyDetail)
	group.Get("/properties/:id/gallery", GetGallery)
	group.Get("/properties/:id/share", GetShareLinks)
	group.Get("/properties/:id/stats", GetPropertyStats)
	group.Post("/properties/:id/favorite", ToggleFavorite)
	group.Post("/properties/:id/inquiries", SendInquiry)
	f.app = app

	t.Cleanup(func() {
		f.source.AssertExpectations(t)
		f.account.AssertExpectations(t)
	})
	return f
}

func (f *fixture) token(t *testing.T) string {
	t.Helper()
	token, err := f.signer.GenerateToken("u1", "Layla Haddad", "layla@example.com", "+971500000000", time.Hour)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, target, body, token string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func villa() *model.Property {
	return &model.Property{
		ID:       "42",
		Title:    "Sunset Villa",
		Price:    1250000,
		Category: model.CategoryForSale,
		Images:   []string{"a.jpg", "b.jpg", "c.jpg"},
	}
}
