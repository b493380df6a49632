package common

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory holding sadhana's persisted state
// (~/.sadhana by default). SADHANA_HOME overrides it, which is also
// how tests isolate themselves.
func DataDir() string {
	if dir := os.Getenv("SADHANA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sadhana")
}

// ProgressPath returns the path to the user progress file.
func ProgressPath() string {
	return filepath.Join(DataDir(), "progress.json")
}
