package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/lead-scraper/internal/types"
)

// employmentType matches the employment-type suffix LinkedIn appends to
// company names, e.g. "Acme · Full-time".
var employmentType = regexp.MustCompile(`(?i)\s*\b(Full-time|Part-time|Contract|Self-employed|Freelance|Internship|Apprenticeship|Seasonal)\b.*$`)

var experienceLists = []string{
	`section:has(h2:contains("Experience")) ul`,
	"section.experience-section ul",
	`section[data-section="experience"] ul`,
}

var (
	titleSelectors = []string{
		`div.t-bold span[aria-hidden="true"]`,
		"div.t-bold",
		"h3",
	}
	companySelectors = []string{
		`span.t-14.t-normal:not(.t-black--light) span[aria-hidden="true"]`,
		"span.t-normal:not(.t-black--light)",
		"h4",
	}
	durationSelectors = []string{
		`span.t-14.t-normal.t-black--light span[aria-hidden="true"]`,
		"span.pvs-entity__caption-wrapper",
		"span.date-range",
	}
)

// Experiences parses the experience section into structured entries.
// Items without a job title are skipped.
func Experiences(doc *goquery.Document) []types.ExperienceEntry {
	var list *goquery.Selection
	for _, css := range experienceLists {
		if sel := doc.Find(css).First(); sel.Length() > 0 {
			list = sel
			break
		}
	}

	entries := []types.ExperienceEntry{}
	if list == nil {
		return entries
	}

	list.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
		title := firstText(item, titleSelectors)
		if title == "" {
			return
		}
		entries = append(entries, types.ExperienceEntry{
			Company:  CleanCompany(firstText(item, companySelectors)),
			JobTitle: title,
			Duration: firstText(item, durationSelectors),
		})
	})
	return entries
}

// CleanCompany strips the employment-type suffix and trailing separators.
func CleanCompany(raw string) string {
	cleaned := employmentType.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.TrimSpace(strings.TrimRight(cleaned, " ·"))
}

func firstText(item *goquery.Selection, selectors []string) string {
	for _, css := range selectors {
		if text := strings.TrimSpace(item.Find(css).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
