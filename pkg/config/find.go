package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames are the config file names searched for, in order.
var FileNames = []string{".smoketest.yaml", ".smoketest.yml"}

// ErrNotFound means no config file was found and the defaults apply.
var ErrNotFound = errors.New("smoketest config file not found")

// FindFile returns explicitPath if set, otherwise searches startDir and its
// parents for a config file, stopping at the repository root (.git), the
// home directory or the filesystem root.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if currentDir == homeDir {
			break
		}

		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrNotFound
}

// Resolve finds and loads the config file, falling back to the defaults
// when none exists, then applies environment overrides.
func Resolve(startDir, explicitPath string, getenv func(string) string) (*Config, string, error) {
	path, err := FindFile(startDir, explicitPath)
	var cfg *Config
	switch {
	case errors.Is(err, ErrNotFound):
		cfg, path = Defaults(), ""
	case err != nil:
		return nil, "", err
	default:
		if cfg, err = Load(path); err != nil {
			return nil, "", err
		}
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
