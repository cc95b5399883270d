package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperiences_ParsesItems(t *testing.T) {
	entries := Experiences(mustDoc(t, fullProfileHTML))
	require.Len(t, entries, 2)

	assert.Equal(t, "Staff Engineer", entries[0].JobTitle)
	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "2020 - Present · 4 yrs", entries[0].Duration)

	assert.Equal(t, "Engineer", entries[1].JobTitle)
	assert.Equal(t, "Globex", entries[1].Company)
	assert.Equal(t, "2017 - 2020", entries[1].Duration)
}

func TestExperiences_SkipsItemsWithoutTitle(t *testing.T) {
	html := `<html><body><section><h2>Experience</h2><ul>
		<li><span class="t-normal">Orphan Co</span></li>
		<li><h3>Analyst</h3><h4>Initech</h4><span class="date-range">2015</span></li>
	</ul></section></body></html>`

	entries := Experiences(mustDoc(t, html))
	require.Len(t, entries, 1)
	assert.Equal(t, "Analyst", entries[0].JobTitle)
	assert.Equal(t, "Initech", entries[0].Company)
	assert.Equal(t, "2015", entries[0].Duration)
}

func TestExperiences_NoSection(t *testing.T) {
	entries := Experiences(mustDoc(t, `<html><body></body></html>`))
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCleanCompany(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme · Full-time", "Acme"},
		{"Globex Part-time", "Globex"},
		{"Initech · Internship", "Initech"},
		{"Umbrella · Self-employed", "Umbrella"},
		{"Contractors Inc", "Contractors Inc"},
		{"  Hooli  ", "Hooli"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanCompany(tt.in), "input %q", tt.in)
	}
}
