// Package journal persists the audit trail and the inverse-action rollback
// log. Both files are append-only text, one line per action, written in the
// same order so line N of the rollback log undoes line N of the audit log.
package journal

import (
	"fmt"
	"os"
	"time"
)

// Action is the audited action kind.
type Action string

const (
	// ActionCopy records a file copied into a framework folder.
	ActionCopy Action = "COPY"
	// ActionLeave records an unmatched file left in place. Src and dest are
	// equal and the paired rollback instruction is a no-op, kept for
	// traceability.
	ActionLeave Action = "LEAVE"
)

// timeLayout matches the original log format, microsecond precision.
const timeLayout = "2006-01-02 15:04:05.000000"

// Writer appends paired audit and rollback lines. Files are opened in append
// mode per write so an interrupted run loses at most the in-flight line.
type Writer struct {
	auditPath    string
	rollbackPath string
	now          func() time.Time
}

// NewWriter creates a journal writer targeting the two log paths.
func NewWriter(auditPath, rollbackPath string) *Writer {
	return &Writer{
		auditPath:    auditPath,
		rollbackPath: rollbackPath,
		now:          time.Now,
	}
}

// Record appends exactly one audit line and one rollback line. Errors are
// returned, never swallowed: losing audit lines voids the rollback guarantee,
// so callers treat a failure here as fatal to the run.
func (w *Writer) Record(action Action, src, dest string) error {
	auditLine := fmt.Sprintf("%s - %s: %s -> %s\n", w.now().Format(timeLayout), action, src, dest)
	if err := appendLine(w.auditPath, auditLine); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}

	// The inverse instruction always restores src from dest, even for LEAVE
	// where both sides are the same path.
	rollbackLine := fmt.Sprintf("mv '%s' '%s'\n", dest, src)
	if err := appendLine(w.rollbackPath, rollbackLine); err != nil {
		return fmt.Errorf("append rollback log: %w", err)
	}

	return nil
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
