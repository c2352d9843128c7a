package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the first readable file in paths into
// the process environment. Variables already set in the environment win.
//
// It returns the loaded path, or "" when none of the files exist.
func LoadDotEnv(paths ...string) (string, error) {
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		err := godotenv.Load(path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return "", nil
}
