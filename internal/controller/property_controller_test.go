package controller

import (
	"errors"
	"net/http"
	"testing"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetPropertyDetail(t *testing.T) {
	tr := new(MockTracker)
	f := newFixture(t, tr)

	other := model.Property{ID: "7", Title: "Marina Loft", Price: 900000}
	f.source.On("GetPropertyByID", mock.Anything, "42").Return(villa(), nil)
	f.source.On("GetSimilarProperties", mock.Anything, "42").Return([]model.Property{*villa(), other}, nil)
	tr.On("RecordView", mock.Anything, mock.MatchedBy(func(v model.PropertyView) bool {
		return v.PropertyID == "42" && v.UserID == nil && v.VisitorID != ""
	})).Return(true, nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42", "", "")
	require.Equal(t, http.StatusOK, status)

	v := body["view"].(map[string]interface{})
	assert.Equal(t, "loaded", v["phase"])
	assert.Equal(t, "AED 1,250,000", v["priceLabel"])
	assert.Equal(t, "https://example.com/property/42/sunset-villa", v["url"])
	assert.Equal(t, false, v["isFavorite"])

	similar := v["similar"].([]interface{})
	require.Len(t, similar, 1)
	assert.Equal(t, "7", similar[0].(map[string]interface{})["id"])

	gallery := v["gallery"].(map[string]interface{})
	assert.Equal(t, "1 / 3", gallery["counter"])
	tr.AssertExpectations(t)
}

func TestGetPropertyDetail_LabelsFeatures(t *testing.T) {
	f := newFixture(t, nil)

	p := villa()
	p.Features = model.Features{Outdoor: []string{"pool", "rooftop"}, Indoor: []string{"central-ac"}}
	f.source.On("GetPropertyByID", mock.Anything, "42").Return(p, nil)
	f.source.On("GetSimilarProperties", mock.Anything, "42").Return([]model.Property{}, nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42", "", "")
	require.Equal(t, http.StatusOK, status)

	features := body["features"].(map[string]interface{})
	assert.Equal(t, []interface{}{
		map[string]interface{}{"value": "pool", "label": "Swimming Pool"},
		map[string]interface{}{"value": "rooftop", "label": "rooftop"},
	}, features["outdoor"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"value": "central-ac", "label": "Central A/C"},
	}, features["indoor"])
	assert.Equal(t, []interface{}{}, features["location"])
}

func TestGetPropertyDetail_SignedInChecksFavorite(t *testing.T) {
	f := newFixture(t, nil)
	token := f.token(t)

	f.source.On("GetPropertyByID", mock.Anything, "42").Return(villa(), nil)
	f.source.On("GetSimilarProperties", mock.Anything, "42").Return(nil, errors.New("down"))
	f.account.On("CheckFavorite", mock.Anything, "42").Return(true, nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42", "", token)
	require.Equal(t, http.StatusOK, status)

	v := body["view"].(map[string]interface{})
	assert.Equal(t, true, v["isFavorite"])
	assert.Empty(t, v["similar"])
	assert.Equal(t, []string{token}, f.tokens)

	inquiry := v["inquiry"].(map[string]interface{})
	assert.Equal(t, "Layla Haddad", inquiry["name"])
	assert.Equal(t, "layla@example.com", inquiry["email"])
}

func TestGetPropertyDetail_LoadFailure(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &api.StatusError{Code: http.StatusNotFound, Body: "missing"}, http.StatusNotFound},
		{"upstream down", errors.New("connection reset"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.source.On("GetPropertyByID", mock.Anything, "42").Return(nil, tc.err)

			status, body := f.do(t, http.MethodGet, "/api/properties/42", "", "")
			require.Equal(t, tc.status, status)

			v := body["view"].(map[string]interface{})
			assert.Equal(t, "redirected", v["phase"])
			assert.Equal(t, "/properties", v["redirect"])

			notices := body["notices"].([]interface{})
			require.Len(t, notices, 1)
			assert.Equal(t, "error", notices[0].(map[string]interface{})["level"])
		})
	}
}

func TestPropertyRoutes_RejectInvalidID(t *testing.T) {
	f := newFixture(t, nil)

	for _, path := range []string{
		"/api/properties/a.b",
		"/api/properties/a.b/gallery",
		"/api/properties/a.b/share",
	} {
		status, body := f.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, "Invalid property ID", body["error"], path)
	}
}

func TestGetGallery(t *testing.T) {
	f := newFixture(t, nil)
	f.source.On("GetPropertyByID", mock.Anything, "42").Return(villa(), nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42/gallery?index=2&move=next&lightbox=true", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["selectedIndex"])
	assert.Equal(t, "a.jpg", body["current"])
	assert.Equal(t, "1 / 3", body["counter"])
	assert.Equal(t, true, body["lightboxOpen"])

	status, _ = f.do(t, http.MethodGet, "/api/properties/42/gallery?move=sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetShareLinks(t *testing.T) {
	f := newFixture(t, nil)
	f.source.On("GetPropertyByID", mock.Anything, "42").Return(villa(), nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42/share", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://example.com/property/42/sunset-villa", body["url"])
	assert.Equal(t, "AED 1,250,000", body["priceLabel"])
	assert.Equal(t, "a.jpg", body["image"])
	assert.EqualValues(t, 2000, body["copyResetMs"])

	links := body["links"].(map[string]interface{})
	assert.Equal(t, "https://example.com/property/42/sunset-villa", links["copy"])
	assert.Contains(t, links["facebook"], "https%3A%2F%2Fexample.com%2Fproperty%2F42%2Fsunset-villa")
}

func TestToggleFavorite_RequiresLogin(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.do(t, http.MethodPost, "/api/properties/42/favorite", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	notices := body["notices"].([]interface{})
	require.Len(t, notices, 1)
	assert.Equal(t, "info", notices[0].(map[string]interface{})["level"])
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t, nil)
	f.account.On("ToggleFavorite", mock.Anything, "42").Return(true, nil).Once()

	status, body := f.do(t, http.MethodPost, "/api/properties/42/favorite", "", f.token(t))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["isFavorite"])
}

func TestToggleFavorite_Failure(t *testing.T) {
	f := newFixture(t, nil)
	f.account.On("ToggleFavorite", mock.Anything, "42").Return(false, errors.New("500")).Once()

	status, body := f.do(t, http.MethodPost, "/api/properties/42/favorite", "", f.token(t))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Failed to update favorites", body["error"])
	// A favorited property must not be reported as unfavorited.
	assert.NotContains(t, body, "isFavorite")
	notices := body["notices"].([]interface{})
	require.Len(t, notices, 1)
	assert.Equal(t, "error", notices[0].(map[string]interface{})["level"])
}

func TestSendInquiry_MissingFieldsNeverReachAPI(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.do(t, http.MethodPost, "/api/properties/42/inquiries",
		`{"name":"Omar","email":"omar@example.com"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []interface{}{"phone", "message"}, body["missing"])
	f.account.AssertNotCalled(t, "SendInquiry", mock.Anything, mock.Anything)
}

func TestSendInquiry(t *testing.T) {
	f := newFixture(t, nil)
	f.account.On("SendInquiry", mock.Anything, mock.MatchedBy(func(r model.InquiryRequest) bool {
		return r.PropertyID == "42" &&
			r.InquiryType == model.InquiryTypeTourRequest &&
			r.PreferredDate == "2026-11-02"
	})).Return(nil).Once()

	status, body := f.do(t, http.MethodPost, "/api/properties/42/inquiries",
		`{"name":"Omar","email":"omar@example.com","phone":"+971501112233","message":"Can I visit?","inquiryType":"tour-request","preferredDate":"2026-11-02","preferredTime":"10:00"}`, "")
	require.Equal(t, http.StatusCreated, status)

	form := body["form"].(map[string]interface{})
	assert.Equal(t, false, form["open"])
	assert.Equal(t, "", form["message"])
}

func TestSendInquiry_Failure(t *testing.T) {
	f := newFixture(t, nil)
	f.account.On("SendInquiry", mock.Anything, mock.Anything).Return(errors.New("503")).Once()

	status, body := f.do(t, http.MethodPost, "/api/properties/42/inquiries",
		`{"name":"Omar","email":"omar@example.com","phone":"+971501112233","message":"Still available?"}`, "")
	require.Equal(t, http.StatusBadGateway, status)

	form := body["form"].(map[string]interface{})
	assert.Equal(t, true, form["open"])
	assert.Equal(t, "Still available?", form["message"])
}

func TestGetPropertyStats(t *testing.T) {
	tr := new(MockTracker)
	f := newFixture(t, tr)
	tr.On("ViewStats", mock.Anything, "42").
		Return(database.ViewStats{PropertyID: "42", TotalViews: 10, UniqueViews: 4}, nil)

	status, body := f.do(t, http.MethodGet, "/api/properties/42/stats", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 10, body["totalViews"])
	assert.EqualValues(t, 4, body["uniqueViews"])
	tr.AssertExpectations(t)
}

func TestGetPropertyStats_TrackingDisabled(t *testing.T) {
	f := newFixture(t, nil)

	status, _ := f.do(t, http.MethodGet, "/api/properties/42/stats", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
