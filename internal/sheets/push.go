package sheets

import (
	"context"
	"fmt"
	"log"
)

// Sheet is a single worksheet tab.
type Sheet interface {
	// FirstRow returns the cells of row 1, empty when the tab is empty.
	FirstRow(ctx context.Context) ([]string, error)
	// AppendRows appends rows after the last non-empty row.
	AppendRows(ctx context.Context, rows [][]string) error
}

// PushResult summarizes an append.
type PushResult struct {
	HeaderAdded bool
	Appended    int
}

// Push appends rows to sheet, preceded by header when the first row is blank.
func Push(ctx context.Context, sheet Sheet, header []string, rows [][]string) (*PushResult, error) {
	first, err := sheet.FirstRow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read first row: %w", err)
	}

	result := &PushResult{}
	batch := rows
	if IsBlankRow(first) {
		batch = append([][]string{header}, rows...)
		result.HeaderAdded = true
	}
	if len(batch) == 0 {
		return result, nil
	}

	if err := sheet.AppendRows(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to append rows: %w", err)
	}
	if result.HeaderAdded {
		log.Printf("[SHEETS] Headers added to sheet")
	}
	result.Appended = len(rows)
	return result, nil
}
