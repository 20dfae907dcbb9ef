package cli

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "/api/v1/players/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"p_1","display_name":"Alice","is_guest":true}`))
	}))
	defer srv.Close()

	var player Player
	require.NoError(t, NewClient(srv.URL+"/", "tok").Get("/api/v1/players/me", &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.True(t, player.IsGuest)
}

func TestClientReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_YOUR_TURN","message":"Not your turn"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Post("/api/v1/match/shots", map[string]int{"x": 1, "y": 2}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "NOT_YOUR_TURN", apiErr.Code)
	assert.Equal(t, "Not your turn (NOT_YOUR_TURN)", err.Error())
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Get("/api/v1/health", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestShipKindArg(t *testing.T) {
	assert.Equal(t, "Carrier", shipKindArg("carrier"))
	assert.Equal(t, "Battleship", shipKindArg("BATTLESHIP"))
	assert.Equal(t, "", shipKindArg(""))
}

func TestParseCoords(t *testing.T) {
	x, y, err := parseCoords("3", "7")
	require.NoError(t, err)
	assert.Equal(t, 3, x)
	assert.Equal(t, 7, y)

	_, _, err = parseCoords("a", "1")
	assert.Error(t, err)
}

func TestConfigTokenRoundTrip(t *testing.T) {
	c := &Config{TokenFile: t.TempDir() + "/nested/token"}

	require.NoError(t, c.SaveToken("sess_abc"))

	loaded := &Config{TokenFile: c.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "sess_abc", loaded.Token)

	require.NoError(t, loaded.ClearToken())
	assert.Empty(t, loaded.Token)

	again := &Config{TokenFile: c.TokenFile}
	require.NoError(t, again.LoadToken())
	assert.Empty(t, again.Token)
}
