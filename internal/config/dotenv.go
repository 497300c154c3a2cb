package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no --env-file is given.
const DefaultEnvFile = ".env"

// LoadDotEnv loads KEY=VALUE pairs into the process environment.
// Variables that are already set are left untouched.
// A missing default file is ignored; an explicitly requested file must exist.
func LoadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
