package sheets

import "fmt"

// CredentialsError reports missing or unusable service account credentials.
type CredentialsError struct {
	Source  string
	Message string
	Cause   error
}

func (e *CredentialsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("credentials error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("credentials error (%s): %s", e.Source, e.Message)
}

func (e *CredentialsError) Unwrap() error {
	return e.Cause
}

// SpreadsheetNotFoundError reports an unknown or inaccessible spreadsheet.
type SpreadsheetNotFoundError struct {
	SpreadsheetID string
	Cause         error
}

func (e *SpreadsheetNotFoundError) Error() string {
	return fmt.Sprintf("spreadsheet %q not found, check the ID and that the service account has editor access", e.SpreadsheetID)
}

func (e *SpreadsheetNotFoundError) Unwrap() error {
	return e.Cause
}

// TabNotFoundError reports a missing worksheet tab.
type TabNotFoundError struct {
	SpreadsheetID string
	Title         string
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found in spreadsheet %q", e.Title, e.SpreadsheetID)
}
