package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"strips member id suffix", "https://www.linkedin.com/in/jane-doe-a1b2c3d4", "Jane Doe"},
		{"trailing slash", "https://www.linkedin.com/in/jane-doe-a1b2c3d4/", "Jane Doe"},
		{"query string", "https://www.linkedin.com/in/john-smith-xyz123?trk=abc", "John Smith"},
		{"only last group stripped", "https://www.linkedin.com/in/mary-ann-lee-12-ab34", "Mary Ann Lee 12"},
		{"dots become spaces", "https://linkedin.com/in/j.r.tolkien-99", "J R Tolkien"},
		{"tokens are title cased", "https://linkedin.com/in/MCDONALD-ronald-1a", "Mcdonald Ronald"},
		{"percent encoded", "https://linkedin.com/in/jos%C3%A9-garc%C3%ADa-7b", "José García"},
		{"suffix longer than ten kept", "https://linkedin.com/in/ada-lovelace-abcdefghijk", "Ada Lovelace Abcdefghijk"},
		{"two tokens lose the last as a suffix", "https://www.linkedin.com/in/jane-doe", "Jane"},
		{"vanity without suffix", "https://linkedin.com/in/satyanadella", "Satyanadella"},
		{"bare member id yields empty", "https://www.linkedin.com/in/a1b2c3d4e5", ""},
		{"no in segment", "https://www.linkedin.com/company/acme", "Unknown User"},
		{"not a url", "hello", "Unknown User"},
		{"empty", "", "Unknown User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveName(tt.url))
		})
	}
}

func TestDisplayName_FallsBackToUnknown(t *testing.T) {
	assert.Equal(t, "Unknown User", DisplayName("https://www.linkedin.com/in/a1b2c3d4e5"))
	assert.Equal(t, "Jane Doe", DisplayName("https://www.linkedin.com/in/jane-doe-a1b2c3d4"))
}

func TestDeriveName_IsPure(t *testing.T) {
	url := "https://www.linkedin.com/in/jane-doe-a1b2c3d4"
	assert.Equal(t, DeriveName(url), DeriveName(url))
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/in/jane-doe/", "https://www.linkedin.com/in/jane-doe"},
		{"HTTPS://WWW.LinkedIn.com/in/jane-doe", "https://www.linkedin.com/in/jane-doe"},
		{"https://www.linkedin.com/in/jane-doe?miniProfileUrn=x#top", "https://www.linkedin.com/in/jane-doe"},
		{"  https://www.linkedin.com/in/jane-doe  ", "https://www.linkedin.com/in/jane-doe"},
		{"u1", "u1"},
		{" u1 ", "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKey_CaseOfPathPreserved(t *testing.T) {
	assert.NotEqual(t, Key("https://linkedin.com/in/Jane"), Key("https://linkedin.com/in/jane"))
}
