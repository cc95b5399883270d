package sheets

import (
	"encoding/json"
	"errors"
	"os"
)

// CredentialsEnv holds service account JSON when set.
const CredentialsEnv = "GOOGLE_SERVICE_ACCOUNT_JSON"

// LoadCredentials returns service account JSON from envJSON, falling back
// to the local file at path.
func LoadCredentials(envJSON, path string) ([]byte, error) {
	if envJSON != "" {
		if !json.Valid([]byte(envJSON)) {
			return nil, &CredentialsError{Source: CredentialsEnv, Message: "environment variable contains invalid JSON"}
		}
		return []byte(envJSON), nil
	}

	if path == "" {
		return nil, &CredentialsError{Source: "config", Message: CredentialsEnv + " not set and no credentials file configured"}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &CredentialsError{Source: path, Message: CredentialsEnv + " not set and credentials file not found", Cause: err}
		}
		return nil, &CredentialsError{Source: path, Message: "failed to read credentials file", Cause: err}
	}
	if !json.Valid(content) {
		return nil, &CredentialsError{Source: path, Message: "credentials file contains invalid JSON"}
	}
	return content, nil
}
