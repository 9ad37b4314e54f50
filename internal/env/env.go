// Package env locates the per-user directories of tempo-recipe.
package env

import (
	"os"
	"path/filepath"
)

const appDir = "tempo-recipe"

// ConfigDir returns <UserConfigDir>/tempo-recipe. It is not created.
func ConfigDir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, appDir), nil
}

// WorkDir returns <UserCacheDir>/tempo-recipe, creating it with 0700
// permissions when missing. Build trees live below it.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(userCacheDir, appDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
