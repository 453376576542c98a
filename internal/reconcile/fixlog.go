package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FixLog is the compliance audit trail: one line per received fix, appended
// to a plain text file. The file is only ever opened O_APPEND; entries are
// never rewritten.
type FixLog struct {
	path string
}

// NewFixLog creates a fix-history log writing to the given path.
func NewFixLog(path string) *FixLog {
	return &FixLog{path: path}
}

// Append records one received fix.
func (l *FixLog) Append(staffName, address, shiftID, body string, at time.Time) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create fix log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open fix log: %w", err)
	}
	defer f.Close()

	entry := fmt.Sprintf("[%s] From=%s (%s) | Shift=%s | Fix=%s\n",
		at.Format("2006-01-02 15:04:05"), staffName, address, shiftID, body)
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("append fix log entry: %w", err)
	}
	return nil
}
