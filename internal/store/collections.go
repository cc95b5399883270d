package store

import (
	"context"

	"github.com/jonathan/lead-scraper/internal/naming"
	"github.com/jonathan/lead-scraper/internal/types"
)

// URLCollection returns the named URL collection at path. The first
// stored name for a URL wins; new entries without a name get one derived
// from the URL.
func URLCollection(path string) *Collection[types.NamedURLEntry] {
	return NewCollection(path,
		func(e types.NamedURLEntry) string { return naming.Key(e.URL) },
		Policy[types.NamedURLEntry]{
			Resolve: func(existing, _ types.NamedURLEntry) types.NamedURLEntry {
				return existing
			},
			Prepare: func(e types.NamedURLEntry) types.NamedURLEntry {
				if e.Name == "" {
					e.Name = naming.DisplayName(e.URL)
				}
				return e
			},
		})
}

// ExperienceCollection returns the profile experience collection at path.
// A resubmitted profile replaces the stored record wholesale.
func ExperienceCollection(path string) *Collection[types.ProfileExperienceRecord] {
	prepare := func(r types.ProfileExperienceRecord) types.ProfileExperienceRecord {
		if r.ProfileName == "" {
			r.ProfileName = naming.DisplayName(r.ProfileURL)
		}
		if r.Experiences == nil {
			r.Experiences = []types.ExperienceEntry{}
		}
		return r
	}
	return NewCollection(path,
		func(r types.ProfileExperienceRecord) string { return naming.Key(r.ProfileURL) },
		Policy[types.ProfileExperienceRecord]{
			Resolve: func(_, incoming types.ProfileExperienceRecord) types.ProfileExperienceRecord {
				return prepare(incoming)
			},
			Prepare: prepare,
		})
}

// MergeURLs merges bare URLs into a named URL collection.
func MergeURLs(ctx context.Context, c *Collection[types.NamedURLEntry], urls []string) (*MergeResult, error) {
	entries := make([]types.NamedURLEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, types.NamedURLEntry{URL: u})
	}
	return c.Merge(ctx, entries)
}
