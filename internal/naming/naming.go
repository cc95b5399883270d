// Package naming derives display names and merge keys from LinkedIn profile URLs.
package naming

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/lead-scraper/internal/types"
)

var (
	// profileSegment captures the path segment following /in/
	profileSegment = regexp.MustCompile(`/in/([^/?#]+)`)
	// memberIDSuffix matches LinkedIn's opaque member-id suffix, e.g. "-a1b2c3d4"
	memberIDSuffix = regexp.MustCompile(`-[A-Za-z0-9]{1,10}$`)
	// bareMemberID matches a segment that is nothing but an opaque member id
	bareMemberID = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
)

// DeriveName turns a profile URL into a human-readable name.
// It returns types.UnknownUser when the URL has no /in/ segment, and an
// empty string when the segment is only a member-id suffix.
func DeriveName(profileURL string) string {
	match := profileSegment.FindStringSubmatch(profileURL)
	if match == nil {
		return types.UnknownUser
	}

	segment := match[1]
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}

	if isBareMemberID(segment) {
		return ""
	}

	// Only the last dash group is stripped
	cleaned := memberIDSuffix.ReplaceAllString(segment, "")
	cleaned = strings.NewReplacer("-", " ", ".", " ").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	var words []string
	for _, word := range strings.Split(cleaned, " ") {
		if word == "" {
			continue
		}
		words = append(words, capitalize(word))
	}
	return strings.Join(words, " ")
}

// DisplayName is DeriveName with the empty result replaced by types.UnknownUser.
func DisplayName(profileURL string) string {
	if name := DeriveName(profileURL); name != "" {
		return name
	}
	return types.UnknownUser
}

// Key returns the merge key for a profile URL. Scheme and host are
// lowercased, query, fragment and trailing slashes are dropped. Values that
// do not parse as absolute URLs are only trimmed.
func Key(profileURL string) string {
	trimmed := strings.TrimSpace(profileURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return trimmed
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""
	return parsed.String()
}

// isBareMemberID reports whether a hyphen-less segment looks like an opaque
// id rather than a vanity name: it must mix letters and digits.
func isBareMemberID(segment string) bool {
	if !bareMemberID.MatchString(segment) {
		return false
	}
	hasLetter := strings.IndexFunc(segment, unicode.IsLetter) >= 0
	hasDigit := strings.IndexFunc(segment, unicode.IsDigit) >= 0
	return hasLetter && hasDigit
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
