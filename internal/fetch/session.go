package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/google/renameio/v2"
)

// LoginURL is where a session capture starts.
const LoginURL = "https://www.linkedin.com/login"

// StorageState is the on-disk session artifact: the browser's cookies at
// the time of capture. Origins is kept opaque so captured files round-trip.
type StorageState struct {
	Cookies []StoredCookie    `json:"cookies"`
	Origins []json.RawMessage `json:"origins"`
}

// StoredCookie is one cookie in a StorageState. Expires is seconds since
// the epoch, or -1 for a session cookie.
type StoredCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

// LoadStorageState reads the session artifact. Any failure is a *SessionError;
// a batch must not start without a session.
func LoadStorageState(path string) (*StorageState, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SessionError{Path: path, Message: "session not found, run capture-session first"}
		}
		return nil, &SessionError{Path: path, Message: "failed to read session", Cause: err}
	}

	var state StorageState
	if err := json.Unmarshal(content, &state); err != nil {
		return nil, &SessionError{Path: path, Message: "failed to parse session", Cause: err}
	}
	if len(state.Cookies) == 0 {
		return nil, &SessionError{Path: path, Message: "session has no cookies"}
	}
	return &state, nil
}

// SaveStorageState writes the session artifact with owner-only permissions.
func SaveStorageState(path string, state *StorageState) error {
	if state.Origins == nil {
		state.Origins = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session %s: %w", path, err)
	}
	return nil
}

// CookieParams converts the stored cookies for network.SetCookies.
func (s *StorageState) CookieParams() []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		param := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.SameSite != "" {
			param.SameSite = network.CookieSameSite(c.SameSite)
		}
		if c.Expires > 0 {
			sec, frac := math.Modf(c.Expires)
			expires := cdp.TimeSinceEpoch(time.Unix(int64(sec), int64(frac*1e9)))
			param.Expires = &expires
		}
		params = append(params, param)
	}
	return params
}

// StateFromCookies builds a StorageState from live browser cookies.
func StateFromCookies(cookies []*network.Cookie) *StorageState {
	state := &StorageState{
		Cookies: make([]StoredCookie, 0, len(cookies)),
		Origins: []json.RawMessage{},
	}
	for _, c := range cookies {
		expires := c.Expires
		if c.Session {
			expires = -1
		}
		state.Cookies = append(state.Cookies, StoredCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return state
}

// CaptureSession opens the login page, gives the operator wait to log in by
// hand, and saves the resulting cookies to path.
func CaptureSession(ctx context.Context, browser *Browser, path string, wait time.Duration) error {
	if err := browser.Navigate(ctx, LoginURL); err != nil {
		return &NavigationError{URL: LoginURL, Message: "failed to open login page", Cause: err}
	}

	log.Printf("[SESSION] Please log in manually, saving in %s...", wait)
	if err := sleepContext(ctx, wait); err != nil {
		return err
	}

	cookies, err := browser.Cookies(ctx)
	if err != nil {
		return err
	}
	if err := SaveStorageState(path, StateFromCookies(cookies)); err != nil {
		return err
	}
	log.Printf("[SESSION] Saved %d cookies to %s", len(cookies), path)
	return nil
}
