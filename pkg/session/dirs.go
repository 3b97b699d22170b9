package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	sessionDirFormat = "2006-01-02-15-04"
	dirPerm          = 0775
)

// createSessionDir makes the timestamped output directory for this run.
// Sessions started within the same minute collide; the name gets an "a"
// appended until it is unique.
func createSessionDir(base string, now time.Time) (string, error) {
	dir := filepath.Join(base, now.Format(sessionDirFormat))
	for {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			break
		}
		dir += "a"
	}
	if err := os.Mkdir(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}

	return dir, nil
}
