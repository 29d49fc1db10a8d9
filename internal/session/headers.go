package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
)

// DefaultHeadersPath returns the standard location of the persisted
// session headers file.
func DefaultHeadersPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "aahotels", "headers.json"), nil
}

// LoadHeaders reads a headers file (JSON object of header name to
// value). A missing file yields ErrNoHeaders so callers can
// distinguish "never imported" from a real read failure.
func LoadHeaders(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrNoHeaders, path)
		}
		return nil, fmt.Errorf("failed to read headers file: %w", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("failed to parse headers file %s: %w", path, err)
	}
	return headers, nil
}

// SaveHeaders writes the headers file with owner-only permissions,
// creating parent directories as needed. Session cookies are
// credentials; 0600 keeps them private.
func SaveHeaders(path string, headers map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(headers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}
	return nil
}
