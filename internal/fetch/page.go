// Package fetch drives a browser tab: session cookies, navigation,
// network-idle detection and progressive scrolling.
package fetch

import (
	"context"
	"time"
)

// Page is a single browser tab. Only one caller uses a Page at a time.
type Page interface {
	// Navigate loads url and returns once the load event fired.
	Navigate(ctx context.Context, url string) error
	// WaitNetworkIdle blocks until no request has been in flight for quiet.
	WaitNetworkIdle(ctx context.Context, quiet time.Duration) error
	// ScrollTo scrolls the viewport to vertical offset y.
	ScrollTo(ctx context.Context, y int) error
	// ScrollHeight returns document.body.scrollHeight.
	ScrollHeight(ctx context.Context) (int, error)
	// HTML returns the rendered document.
	HTML(ctx context.Context) (string, error)
}
