package sheets

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/lead-scraper/internal/schemas"
	"github.com/jonathan/lead-scraper/internal/store"
)

// TabOpener opens worksheet tabs. *Client implements it.
type TabOpener interface {
	Tab(ctx context.Context, spreadsheetID, title string, create bool) (Sheet, error)
}

// Pusher appends stored collections to one spreadsheet.
type Pusher struct {
	tabs          TabOpener
	spreadsheetID string
}

// NewPusher creates a Pusher for spreadsheetID.
func NewPusher(tabs TabOpener, spreadsheetID string) *Pusher {
	return &Pusher{tabs: tabs, spreadsheetID: spreadsheetID}
}

// PushURLs appends the named URL collection at path to tab, creating the
// tab when missing.
func (p *Pusher) PushURLs(ctx context.Context, path, tab string) (*PushResult, error) {
	entries, err := loadValidated(store.URLCollection(path), schemas.URLCollection)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no profile URLs in %s, nothing to append", path)
	}

	sheet, err := p.tabs.Tab(ctx, p.spreadsheetID, tab, true)
	if err != nil {
		return nil, err
	}
	result, err := Push(ctx, sheet, URLHeader, URLRows(entries))
	if err != nil {
		return nil, err
	}
	log.Printf("[SHEETS] Appended %d profile URLs to tab %q", result.Appended, tab)
	return result, nil
}

// PushExperience appends the experience collection at path to an existing tab.
func (p *Pusher) PushExperience(ctx context.Context, path, tab string) (*PushResult, error) {
	records, err := loadValidated(store.ExperienceCollection(path), schemas.ExperienceCollection)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no profile data in %s, nothing to append", path)
	}

	sheet, err := p.tabs.Tab(ctx, p.spreadsheetID, tab, false)
	if err != nil {
		return nil, err
	}
	result, err := Push(ctx, sheet, ExperienceHeader, ExperienceRows(records))
	if err != nil {
		return nil, err
	}
	log.Printf("[SHEETS] Appended %d profiles to tab %q", result.Appended, tab)
	return result, nil
}

// loadValidated strictly loads a collection and checks it against schema.
func loadValidated[T any](c *store.Collection[T], schema string) ([]T, error) {
	items, err := c.LoadStrict()
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateFile(schema, c.Path()); err != nil {
		return nil, fmt.Errorf("invalid collection %s: %w", c.Path(), err)
	}
	return items, nil
}
