// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/lead-scraper/internal/scrape"
	"github.com/jonathan/lead-scraper/internal/sheets"
	"github.com/jonathan/lead-scraper/internal/store"
	"github.com/jonathan/lead-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a scraped profile and its parsed experience entries.
func (p *Printer) PrintProfile(record types.ProfileRecord, experiences []types.ExperienceEntry) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("URL:       %s\n", record.URL))
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(record.Name)))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", orDash(record.Location)))
	sb.WriteString(fmt.Sprintf("About:     %s\n", orDash(firstLine(record.About))))
	sb.WriteString(fmt.Sprintf("Education: %s\n", orDash(firstLine(record.Education))))
	sb.WriteString(fmt.Sprintf("Skills:    %s\n", orDash(firstLine(record.Skills))))

	if len(experiences) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s", exp.JobTitle, orDash(exp.Company)))
			if exp.Duration != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			sb.WriteString("\n")
		}
		if len(experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(experiences)-maxItemsToShow))
		}
	}

	p.printBox("SCRAPED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the outcome counts of a batch run.
func (p *Printer) PrintBatchSummary(result *scrape.BatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Output:   %s\n", result.OutputPath))
	sb.WriteString(fmt.Sprintf("Profiles: %d\n", result.Summary.Total))
	sb.WriteString(fmt.Sprintf("  ✓ Scraped:  %d\n", result.Summary.Scraped))
	sb.WriteString(fmt.Sprintf("  ⏱ Timeouts: %d\n", result.Summary.Timeouts))
	sb.WriteString(fmt.Sprintf("  ✗ Errors:   %d\n", result.Summary.Errors))

	failed := 0
	for _, record := range result.Records {
		if !scrape.IsSentinel(record) {
			continue
		}
		if failed == 0 {
			sb.WriteString("\nFailed:\n")
		}
		failed++
		if failed <= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", record.Name, record.URL))
		}
	}
	if failed > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", failed-maxItemsToShow))
	}

	if result.Experience != nil {
		sb.WriteString(fmt.Sprintf("\nExperience: %d new, %d updated, total %d\n",
			result.Experience.Added, result.Experience.Updated, result.Experience.Total))
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMergeResult outputs the counts from a collection merge.
func (p *Printer) PrintMergeResult(path string, result *store.MergeResult) {
	if result == nil {
		return
	}
	content := fmt.Sprintf("File:    %s\nAdded:   %d\nUpdated: %d\nTotal:   %d",
		path, result.Added, result.Updated, result.Total)
	p.printBox("COLLECTION SAVED", content)
}

// PrintPushResult outputs the counts from a spreadsheet append.
func (p *Printer) PrintPushResult(tab string, result *sheets.PushResult) {
	if result == nil {
		return
	}
	header := "no"
	if result.HeaderAdded {
		header = "yes"
	}
	content := fmt.Sprintf("Tab:          %s\nRows:         %d\nHeader added: %s", tab, result.Appended, header)
	p.printBox("SHEET UPDATED", content)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return s
}
