package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestLocations(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.do(t, http.MethodGet, "/api/locations/suggest?q=marina", "", "")
	require.Equal(t, http.StatusOK, status)
	suggestions := body["suggestions"].([]interface{})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Dubai Marina", suggestions[0].(map[string]interface{})["label"])

	status, _ = f.do(t, http.MethodGet, "/api/locations/suggest", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetCommunitiesByEmirate(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.do(t, http.MethodGet, "/api/locations/SH/communities", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["communities"], 2)

	status, body = f.do(t, http.MethodGet, "/api/locations", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["emirates"], 5)
}
