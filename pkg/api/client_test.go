package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"estepage_storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, nil)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetAllProperties(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/properties", r.URL.Path)
		got = r.URL.Query()
		writeJSON(w, http.StatusOK, PropertyList{
			Properties: []model.Property{{ID: "1"}, {ID: "2"}},
		})
	})

	list, err := c.GetAllProperties(context.Background(), ListOptions{
		Limit:   3,
		SortBy:  "price",
		Order:   "asc",
		Filters: url.Values{"category": {"For Rent"}, "features": {"pool,gym"}},
	})
	require.NoError(t, err)

	assert.Len(t, list.Properties, 2)
	assert.Equal(t, 2, list.Total, "total never undercounts the page")
	assert.Equal(t, "3", got.Get("limit"))
	assert.Equal(t, "price", got.Get("sortBy"))
	assert.Equal(t, "asc", got.Get("order"))
	assert.Equal(t, "For Rent", got.Get("category"))
	assert.Equal(t, "pool,gym", got.Get("features"))
}

func TestClient_GetPropertyByID_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Property not found"})
	})

	p, err := c.GetPropertyByID(context.Background(), "404")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.Code)
}

func TestClient_ServerErrorIsNotNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetSimilarProperties(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_FavoritesForwardToken(t *testing.T) {
	var auth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/favorites/42/check":
			assert.Equal(t, http.MethodGet, r.Method)
			writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": false})
		case "/favorites/42/toggle":
			assert.Equal(t, http.MethodPost, r.Method)
			writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	authed := c.WithToken("abc")
	fav, err := authed.CheckFavorite(context.Background(), "42")
	require.NoError(t, err)
	assert.False(t, fav)

	fav, err = authed.ToggleFavorite(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, fav)

	_, _ = c.CheckFavorite(context.Background(), "42")

	assert.Equal(t, []string{"Bearer abc", "Bearer abc", ""}, auth, "WithToken does not leak into the base client")
}

func TestClient_SendInquiry(t *testing.T) {
	var body model.InquiryRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inquiries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusCreated)
	})

	err := c.SendInquiry(context.Background(), model.InquiryRequest{
		PropertyID:  "42",
		Name:        "Omar",
		Email:       "omar@example.com",
		Phone:       "+97150123",
		Message:     "Hello",
		InquiryType: model.InquiryTypeGeneral,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", body.PropertyID)
	assert.Equal(t, model.InquiryTypeGeneral, body.InquiryType)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetPropertyByID(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
