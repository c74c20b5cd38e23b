package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvHome overrides the votd home directory.
	EnvHome = "VOTD_HOME"

	configFileName = "config.yaml"

	dirPerm  = 0o700
	filePerm = 0o600
)

// HomeDir returns the votd home directory: $VOTD_HOME when set, otherwise
// ~/.votd.
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(userHome, ".votd"), nil
}

// FilePath returns the config file path inside the votd home directory.
func FilePath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// EnsureHomeDir creates the votd home directory if it does not exist.
func EnsureHomeDir() error {
	home, err := HomeDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(home, dirPerm); err != nil {
		return fmt.Errorf("failed to create votd home directory: %w", err)
	}

	return nil
}
