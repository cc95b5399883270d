package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-scraper/internal/types"
)

func readEntries(t *testing.T, path string) []types.NamedURLEntry {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []types.NamedURLEntry
	require.NoError(t, json.Unmarshal(content, &entries))
	return entries
}

func TestMergeURLs_NewCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company_urls", "leads.json")
	coll := URLCollection(path)

	result, err := MergeURLs(context.Background(), coll, []string{
		"https://www.linkedin.com/in/jane-doe-a1b2c3",
		"https://www.linkedin.com/in/john-smith-xyz123",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 2, result.Total)

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "Jane Doe", entries[0].Name)
	assert.Equal(t, "John Smith", entries[1].Name)
}

func TestMergeURLs_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	coll := URLCollection(path)
	urls := []string{"https://www.linkedin.com/in/jane-doe", "https://www.linkedin.com/in/john-smith"}

	_, err := MergeURLs(context.Background(), coll, urls)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	result, err := MergeURLs(context.Background(), coll, urls)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, string(first), string(second))
}

func TestMergeURLs_NoDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	coll := URLCollection(path)

	result, err := MergeURLs(context.Background(), coll, []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/in/jane-doe/",
		"https://WWW.LINKEDIN.COM/in/jane-doe?trk=feed",
		"",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", entries[0].URL)
}

func TestMergeURLs_FirstNameWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"url":"https://www.linkedin.com/in/jane-doe-1","name":"Jane Doe"}]`), 0644))

	coll := URLCollection(path)
	_, err := coll.Merge(context.Background(), []types.NamedURLEntry{
		{URL: "https://www.linkedin.com/in/jane-doe-1", Name: "J. Doe"},
	})
	require.NoError(t, err)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jane Doe", entries[0].Name)
}

func TestMergeURLs_URLOnlyResubmissionKeepsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	url := "https://www.linkedin.com/in/jdoe-42"
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"url":"`+url+`","name":"Jane Doe"}]`), 0644))

	result, err := MergeURLs(context.Background(), URLCollection(path), []string{url})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Total)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jane Doe", entries[0].Name)
}

func TestMergeURLs_MalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	coll := URLCollection(path)
	result, err := coll.Merge(context.Background(), []types.NamedURLEntry{{URL: "u1", Name: "A"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	assert.Equal(t, []types.NamedURLEntry{{URL: "u1", Name: "A"}}, readEntries(t, path))
}

func TestLoad_LegacyBareStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`["https://www.linkedin.com/in/jane-doe-a1b2c3", {"url":"https://www.linkedin.com/in/bob","name":"Robert"}, 42]`), 0644))

	entries := URLCollection(path).Load()
	require.Len(t, entries, 2)
	assert.Equal(t, "Jane Doe", entries[0].Name)
	assert.Equal(t, "Robert", entries[1].Name)
}

func TestLoad_Missing(t *testing.T) {
	entries := URLCollection(filepath.Join(t.TempDir(), "absent.json")).Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoadStrict(t *testing.T) {
	dir := t.TempDir()

	_, err := URLCollection(filepath.Join(dir, "absent.json")).LoadStrict()
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[1,2]`), 0644))
	_, err = URLCollection(bad).LoadStrict()
	require.ErrorAs(t, err, &loadErr)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"url":"u1","name":"A"}]`), 0644))
	entries, err := URLCollection(good).LoadStrict()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMerge_WriteFailureSurfaced(t *testing.T) {
	// A directory at the collection path cannot be replaced by a file
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

	_, err := MergeURLs(context.Background(), URLCollection(path), []string{"https://www.linkedin.com/in/jane-doe"})
	require.Error(t, err)
	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestMerge_LockHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	coll := URLCollection(path).WithLockTimeout(lockRetryDelay * 2)

	holder := URLCollection(path)
	unlock, err := holder.lock(context.Background())
	require.NoError(t, err)
	defer unlock()

	_, err = MergeURLs(context.Background(), coll, []string{"u1"})
	var lockErr *LockError
	assert.ErrorAs(t, err, &lockErr)
}

func TestExperienceCollection_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "individual_profiles_data.json")
	coll := ExperienceCollection(path)
	ctx := context.Background()

	_, err := coll.Merge(ctx, []types.ProfileExperienceRecord{{
		ProfileURL: "https://www.linkedin.com/in/jane-doe",
		Experiences: []types.ExperienceEntry{
			{Company: "A", JobTitle: "Engineer"},
			{Company: "B", JobTitle: "Lead"},
		},
	}})
	require.NoError(t, err)

	result, err := coll.Merge(ctx, []types.ProfileExperienceRecord{{
		ProfileURL:  "https://www.linkedin.com/in/jane-doe",
		ProfileName: "Jane D.",
		Experiences: []types.ExperienceEntry{{Company: "C", JobTitle: "CTO"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Total)

	records, err := coll.LoadStrict()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane D.", records[0].ProfileName)
	assert.Equal(t, []types.ExperienceEntry{{Company: "C", JobTitle: "CTO"}}, records[0].Experiences)
}

func TestExperienceCollection_DerivesMissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experience.json")
	coll := ExperienceCollection(path)

	_, err := coll.Merge(context.Background(), []types.ProfileExperienceRecord{{
		ProfileURL: "https://www.linkedin.com/in/john-smith-xyz123",
	}})
	require.NoError(t, err)

	records := coll.Load()
	require.Len(t, records, 1)
	assert.Equal(t, "John Smith", records[0].ProfileName)
	assert.NotNil(t, records[0].Experiences)
}

func TestWriteAll_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "profiles.json")
	require.NoError(t, WriteAll(path, []types.NamedURLEntry{{URL: "a"}, {URL: "b"}}))
	require.NoError(t, WriteAll(path, []types.NamedURLEntry{{URL: "c"}}))
	assert.Equal(t, []types.NamedURLEntry{{URL: "c"}}, readEntries(t, path))

	require.NoError(t, WriteAll[types.NamedURLEntry](path, nil))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestMergeAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generic.json")
	key := func(s string) string { return s }

	result, err := MergeAndSave(context.Background(), path, []string{"a", "b", "a"}, key, Policy[string]{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Total)
}
