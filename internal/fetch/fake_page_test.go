package fetch

import (
	"context"
	"time"
)

// fakePage records calls and returns scripted results.
type fakePage struct {
	navigateErr error
	idleErr     error
	blockIdle   bool
	height      int
	heightErr   error
	scrollErr   error
	html        string

	navigated []string
	scrolls   []int
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return p.navigateErr
}

func (p *fakePage) WaitNetworkIdle(ctx context.Context, _ time.Duration) error {
	if p.blockIdle {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.idleErr
}

func (p *fakePage) ScrollTo(_ context.Context, y int) error {
	p.scrolls = append(p.scrolls, y)
	return p.scrollErr
}

func (p *fakePage) ScrollHeight(_ context.Context) (int, error) {
	return p.height, p.heightErr
}

func (p *fakePage) HTML(_ context.Context) (string, error) {
	return p.html, nil
}
