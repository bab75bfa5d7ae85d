package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileTokenStore persists the session token at a fixed path, 0600.
// The NOTELOFT_TOKEN env var takes precedence over the file on Load so a
// shell can be pointed at a session without touching disk.
type FileTokenStore struct {
	Path string
}

// Load returns the current token, or "" when none is stored.
func (f FileTokenStore) Load() (string, error) {
	if tok := os.Getenv("NOTELOFT_TOKEN"); tok != "" {
		return tok, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("auth.FileTokenStore.Load: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory if needed.
func (f FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("auth.FileTokenStore.Save: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token), 0600); err != nil {
		return fmt.Errorf("auth.FileTokenStore.Save: %w", err)
	}
	return nil
}

// Clear removes the stored token. A missing file is not an error.
func (f FileTokenStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth.FileTokenStore.Clear: %w", err)
	}
	return nil
}
