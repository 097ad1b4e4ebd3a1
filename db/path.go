package db

import (
	"os"
	"path/filepath"
)

const (
	HistoryEnv      = "COMPASS_JOB_HISTORY"
	historyPath     = "/.config/compass-job/"
	historyFilename = "history.db"
)

// DefaultPath returns the submission history location, next to the
// compass-job config file unless overridden from the environment.
func DefaultPath() string {
	if env := os.Getenv(HistoryEnv); len(env) > 0 {
		return env
	}
	dir := os.Getenv("HOME") + historyPath
	if err := os.MkdirAll(dir, 0744); err != nil {
		return historyFilename
	}
	return filepath.Join(dir, historyFilename)
}
