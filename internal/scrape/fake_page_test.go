package scrape

import (
	"context"
	"time"
)

// scriptedPage serves per-URL HTML and navigation errors.
type scriptedPage struct {
	pages       map[string]string
	navigateErr map[string]error
	panicOn     string

	current   string
	navigated []string
}

func (p *scriptedPage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	if url == p.panicOn {
		panic("renderer crashed")
	}
	p.current = url
	return p.navigateErr[url]
}

func (p *scriptedPage) WaitNetworkIdle(_ context.Context, _ time.Duration) error {
	return nil
}

func (p *scriptedPage) ScrollTo(_ context.Context, _ int) error {
	return nil
}

func (p *scriptedPage) ScrollHeight(_ context.Context) (int, error) {
	return 1000, nil
}

func (p *scriptedPage) HTML(_ context.Context) (string, error) {
	return p.pages[p.current], nil
}
