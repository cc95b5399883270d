// Package types provides type definitions for structured data used throughout the lead-scraper system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Sentinel names stored in place of a real profile name.
const (
	// NameTimeout marks a profile whose page did not load within the navigation bound.
	NameTimeout = "Timeout"
	// NameError marks a profile that failed for any other reason.
	NameError = "Error"
	// UnknownUser is the display name used when none can be derived from the URL.
	UnknownUser = "Unknown User"
)

// ProfileRecord is a full scraped snapshot of one profile's six text fields.
// A record is never mutated after creation; a later scrape of the same URL supersedes it.
type ProfileRecord struct {
	URL        string `json:"url"`
	Name       string `json:"name"`
	About      string `json:"about"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

// NamedURLEntry is a lightweight URL and name pair from a bulk discovery pass.
type NamedURLEntry struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either an object or a bare URL string.
// Bare strings come from legacy collections that stored only URLs.
func (e *NamedURLEntry) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*e = NamedURLEntry{URL: bare}
		return nil
	}

	type plain NamedURLEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("url entry must be a string or object: %w", err)
	}
	*e = NamedURLEntry(p)
	return nil
}

// ExperienceEntry is one position from a profile's work history.
type ExperienceEntry struct {
	Company  string `json:"company" validate:"max=512"`
	JobTitle string `json:"jobTitle" validate:"max=512"`
	Duration string `json:"duration" validate:"max=256"`
}

// ProfileExperienceRecord is a per-profile structured work-history submission.
// Experiences keep the order in which they were submitted.
type ProfileExperienceRecord struct {
	ProfileURL  string            `json:"profileUrl"`
	ProfileName string            `json:"profileName"`
	Experiences []ExperienceEntry `json:"experiences"`
}

// URLList is the input document of a batch scrape.
type URLList struct {
	URLs []string `json:"urls"`
}
