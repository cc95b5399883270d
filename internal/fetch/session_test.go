package fetch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStorageState_Missing(t *testing.T) {
	_, err := LoadStorageState(filepath.Join(t.TempDir(), "linkedin_session.json"))
	require.Error(t, err)

	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Contains(t, err.Error(), "session not found")
}

func TestLoadStorageState_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0600))

	_, err := LoadStorageState(path)
	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Contains(t, err.Error(), "failed to parse session")
}

func TestLoadStorageState_NoCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cookies":[],"origins":[]}`), 0600))

	_, err := LoadStorageState(path)
	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)
}

func TestStorageState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	state := StateFromCookies([]*network.Cookie{
		{Name: "li_at", Value: "secret", Domain: ".linkedin.com", Path: "/", Expires: 1767225600, HTTPOnly: true, Secure: true, SameSite: network.CookieSameSiteNone},
		{Name: "lang", Value: "en", Domain: ".linkedin.com", Path: "/", Session: true},
	})
	require.NoError(t, SaveStorageState(path, state))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadStorageState(path)
	require.NoError(t, err)
	require.Len(t, loaded.Cookies, 2)
	assert.Equal(t, "li_at", loaded.Cookies[0].Name)
	assert.Equal(t, "None", loaded.Cookies[0].SameSite)
	assert.Equal(t, float64(-1), loaded.Cookies[1].Expires)
}

func TestStorageState_CookieParams(t *testing.T) {
	state := &StorageState{Cookies: []StoredCookie{
		{Name: "li_at", Value: "v", Domain: ".linkedin.com", Path: "/", Expires: 1767225600.5, Secure: true, SameSite: "Lax"},
		{Name: "session", Value: "s", Domain: ".linkedin.com", Path: "/", Expires: -1},
	}}

	params := state.CookieParams()
	require.Len(t, params, 2)

	assert.Equal(t, "li_at", params[0].Name)
	assert.Equal(t, network.CookieSameSiteLax, params[0].SameSite)
	require.NotNil(t, params[0].Expires)
	assert.Equal(t, int64(1767225600), time.Time(*params[0].Expires).Unix())

	assert.Nil(t, params[1].Expires, "session cookies carry no expiry")
	assert.Empty(t, string(params[1].SameSite))
}
