package extract

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/lead-scraper/internal/types"
)

// Extractor reads ProfileRecords from rendered pages.
type Extractor struct {
	locators Locators
	verbose  bool
}

// New creates an Extractor. A nil locator table uses DefaultLocators.
func New(locators Locators, verbose bool) *Extractor {
	if locators == nil {
		locators = DefaultLocators()
	}
	return &Extractor{locators: locators, verbose: verbose}
}

// Extract reads every field independently. A missing field is recorded
// as an empty string and never affects the others.
func (e *Extractor) Extract(doc *goquery.Document, url string) types.ProfileRecord {
	values := make(map[Field]string, len(Fields))
	for _, field := range Fields {
		value, strategy, ok := e.lookup(doc, field)
		if !ok {
			log.Printf("[EXTRACT] warning: %s not found for %s", field, url)
			continue
		}
		if e.verbose {
			log.Printf("[EXTRACT] %s matched %q", field, strategy)
		}
		values[field] = value
	}

	return types.ProfileRecord{
		URL:        url,
		Name:       values[FieldName],
		About:      values[FieldAbout],
		Location:   values[FieldLocation],
		Experience: values[FieldExperience],
		Education:  values[FieldEducation],
		Skills:     values[FieldSkills],
	}
}

// ExtractHTML parses html and extracts a record from it.
func (e *Extractor) ExtractHTML(html, url string) (types.ProfileRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.ProfileRecord{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.Extract(doc, url), nil
}

// lookup isolates one field so a panicking strategy counts as a miss.
func (e *Extractor) lookup(doc *goquery.Document, field Field) (value, strategy string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EXTRACT] warning: %s lookup panicked: %v", field, r)
			value, strategy, ok = "", "", false
		}
	}()
	return Lookup(doc, e.locators[field])
}

// TimeoutRecord is emitted for a profile whose page did not load in time.
func TimeoutRecord(url string) types.ProfileRecord {
	return types.ProfileRecord{URL: url, Name: types.NameTimeout}
}

// ErrorRecord is emitted for a profile that failed for any other reason.
func ErrorRecord(url string) types.ProfileRecord {
	return types.ProfileRecord{URL: url, Name: types.NameError}
}
