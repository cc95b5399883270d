// Package extract reads profile fields from a rendered LinkedIn page.
//
// Each field is looked up through a ranked list of strategies; the first
// strategy that yields non-empty text wins. Strategies are plain data so
// they can be reordered and tested on their own.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field names one of the six semantic profile fields.
type Field string

// Profile fields in extraction order.
const (
	FieldName       Field = "name"
	FieldAbout      Field = "about"
	FieldLocation   Field = "location"
	FieldExperience Field = "experience"
	FieldEducation  Field = "education"
	FieldSkills     Field = "skills"
)

// Fields lists every field in extraction order.
var Fields = []Field{FieldName, FieldAbout, FieldLocation, FieldExperience, FieldEducation, FieldSkills}

// Strategy attempts to locate one field. It reports false when the
// element is absent or its text is empty.
type Strategy struct {
	Name   string
	Locate func(doc *goquery.Document) (string, bool)
}

// Locators maps each field to its ranked strategies.
type Locators map[Field][]Strategy

// Selector returns a strategy reading the trimmed text of the first
// element matching css.
func Selector(css string) Strategy {
	return Strategy{
		Name: css,
		Locate: func(doc *goquery.Document) (string, bool) {
			text := strings.TrimSpace(doc.Find(css).First().Text())
			return text, text != ""
		},
	}
}

// TitleStrategy reads the name from the document title, which LinkedIn
// renders as "Jane Doe | LinkedIn".
func TitleStrategy() Strategy {
	return Strategy{
		Name: "document title",
		Locate: func(doc *goquery.Document) (string, bool) {
			title := strings.TrimSpace(doc.Find("head title").First().Text())
			name, _, found := strings.Cut(title, "|")
			name = strings.TrimSpace(name)
			if !found || name == "" || strings.EqualFold(name, "LinkedIn") {
				return "", false
			}
			return name, true
		},
	}
}

// sectionList returns the strategy for a list that follows a section heading.
func sectionList(heading string) Strategy {
	return Selector(`section:has(h2:contains("` + heading + `")) ul`)
}

// DefaultLocators returns the ranked strategies for the current LinkedIn
// markup, followed by the public-profile layout. These break when LinkedIn
// changes its markup.
func DefaultLocators() Locators {
	return Locators{
		FieldName: {
			Selector("h1.text-heading-xlarge"),
			Selector("h1.top-card-layout__title"),
			Selector(`h1[data-test-id="profile-content__title"]`),
			TitleStrategy(),
		},
		FieldAbout: {
			Selector(`section:has(h2:contains("About")) div.break-words`),
			Selector(`section:has(#about) div.inline-show-more-text span[aria-hidden="true"]`),
			Selector(`div.pv-about-section div[data-test-id="about-section-content"] span.visually-hidden`),
			Selector("section.summary div.core-section-container__content"),
		},
		FieldLocation: {
			Selector("span.text-body-small.inline.t-black--light"),
			Selector("div.top-card-layout__entity-info-container span.top-card-layout__locality"),
			Selector(`div[data-test-id="profile-content__primary-info"] span.top-card__location`),
		},
		FieldExperience: {
			sectionList("Experience"),
			Selector("section.experience-section ul"),
			Selector(`section[data-section="experience"] ul`),
		},
		FieldEducation: {
			sectionList("Education"),
			Selector("section.education-section ul"),
			Selector(`section[data-section="educationsDetails"] ul`),
		},
		FieldSkills: {
			sectionList("Skills"),
			Selector("ul.pv-skill-categories-section__top-skills"),
		},
	}
}

// Lookup runs strategies in rank order and returns the first hit along
// with the winning strategy's name. Absence is not a failure: a miss
// returns "", "", false.
func Lookup(doc *goquery.Document, strategies []Strategy) (value, strategy string, ok bool) {
	for _, s := range strategies {
		if s.Locate == nil {
			continue
		}
		if v, found := s.Locate(doc); found {
			return v, s.Name, true
		}
	}
	return "", "", false
}
