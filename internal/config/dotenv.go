package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// dotEnvFiles are tried in order. Missing files are skipped.
var dotEnvFiles = []string{".env"}

// loadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Variables that are already set are left untouched, so values
// configured in the hosting dashboard always win over a checked-in .env.
func loadDotEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
	}

	return nil
}
