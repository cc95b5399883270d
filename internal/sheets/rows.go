// Package sheets projects stored collections into spreadsheet rows and
// appends them to a Google Sheets tab.
package sheets

import (
	"strings"

	"github.com/jonathan/lead-scraper/internal/types"
)

// MaxExperienceSlots is the number of experience triples in a row. Later
// entries are dropped.
const MaxExperienceSlots = 3

// URLHeader is the header row for named URL collections.
var URLHeader = []string{"Profile Name", "Profile URL"}

// ExperienceHeader is the header row for experience collections.
var ExperienceHeader = []string{
	"Profile Name", "Profile URL",
	"Company 1", "Title 1", "Duration 1",
	"Company 2", "Title 2", "Duration 2",
	"Company 3", "Title 3", "Duration 3",
}

// URLRow projects a named URL entry as [name, url].
func URLRow(entry types.NamedURLEntry) []string {
	return []string{entry.Name, entry.URL}
}

// URLRows projects entries in collection order.
func URLRows(entries []types.NamedURLEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, URLRow(entry))
	}
	return rows
}

// ExperienceRow projects a record as a fixed-width row of the profile name,
// URL and the first MaxExperienceSlots experiences, padding absent slots.
func ExperienceRow(record types.ProfileExperienceRecord) []string {
	row := make([]string, 0, len(ExperienceHeader))
	row = append(row, record.ProfileName, record.ProfileURL)
	for i := 0; i < MaxExperienceSlots; i++ {
		if i < len(record.Experiences) {
			exp := record.Experiences[i]
			row = append(row, exp.Company, exp.JobTitle, exp.Duration)
			continue
		}
		row = append(row, "", "", "")
	}
	return row
}

// ExperienceRows projects records in collection order.
func ExperienceRows(records []types.ProfileExperienceRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, ExperienceRow(record))
	}
	return rows
}

// IsBlankRow reports whether every cell of row is empty.
func IsBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
