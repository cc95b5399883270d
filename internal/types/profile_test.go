//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedURLEntry_UnmarshalObject(t *testing.T) {
	var entry NamedURLEntry
	err := json.Unmarshal([]byte(`{"url":"https://www.linkedin.com/in/jane-doe-a1b2","name":"Jane Doe"}`), &entry)
	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe-a1b2", entry.URL)
	assert.Equal(t, "Jane Doe", entry.Name)
}

func TestNamedURLEntry_UnmarshalBareString(t *testing.T) {
	var entry NamedURLEntry
	err := json.Unmarshal([]byte(`"https://www.linkedin.com/in/john-smith-xyz123"`), &entry)
	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/in/john-smith-xyz123", entry.URL)
	assert.Empty(t, entry.Name)
}

func TestNamedURLEntry_UnmarshalMixedCollection(t *testing.T) {
	var entries []NamedURLEntry
	err := json.Unmarshal([]byte(`["u1", {"url": "u2", "name": "B"}]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, NamedURLEntry{URL: "u1"}, entries[0])
	assert.Equal(t, NamedURLEntry{URL: "u2", Name: "B"}, entries[1])
}

func TestNamedURLEntry_UnmarshalRejectsNumber(t *testing.T) {
	var entry NamedURLEntry
	err := json.Unmarshal([]byte(`42`), &entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string or object")
}

func TestProfileExperienceRecord_JSONKeys(t *testing.T) {
	rec := ProfileExperienceRecord{
		ProfileURL:  "https://www.linkedin.com/in/x",
		ProfileName: "X",
		Experiences: []ExperienceEntry{{Company: "Acme", JobTitle: "Engineer", Duration: "2 yrs"}},
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"profileUrl":"https://www.linkedin.com/in/x","profileName":"X","experiences":[{"company":"Acme","jobTitle":"Engineer","duration":"2 yrs"}]}`,
		string(data))
}
