package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/lead-scraper/internal/schemas"
	"github.com/jonathan/lead-scraper/internal/types"
)

// LoadURLList reads a {"urls": [...]} document.
func LoadURLList(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL list %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.URLList, content); err != nil {
		return nil, fmt.Errorf("invalid URL list %s: %w", path, err)
	}

	var list types.URLList
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("failed to parse URL list %s: %w", path, err)
	}
	return list.URLs, nil
}

// OutputPath returns the batch output path for an input list: the ".json"
// suffix becomes "_profiles.json".
func OutputPath(input string) string {
	if strings.HasSuffix(input, ".json") {
		return strings.TrimSuffix(input, ".json") + "_profiles.json"
	}
	return input + "_profiles.json"
}
