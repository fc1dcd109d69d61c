package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Dir holds the per-environment .env files
var Dir = filepath.Join("internal", "config", "env")

// DefaultEnvironment is used when ENV is unset
const DefaultEnvironment = "development"

// Files lists the .env files consulted for environment name, most specific
// first
func Files(name string) []string {
	if name == "" {
		name = DefaultEnvironment
	}
	return []string{filepath.Join(Dir, fmt.Sprintf(".env.%s", name)), ".env"}
}

// LoadEnv loads the first readable .env file for the ENV variable. Variables
// already present in the process environment always win. It returns the file
// that was loaded, or "" when none exists.
func LoadEnv() (string, error) {
	for _, path := range Files(os.Getenv("ENV")) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("error loading env file %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}
