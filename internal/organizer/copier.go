package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyOutcome describes one attempted per-framework copy.
type CopyOutcome struct {
	Framework string
	Dest      string
	Err       error
}

// copyFile duplicates src to dest, preserving mode and timestamps. The
// source is never moved or deleted; re-copying over an existing dest is safe
// and produces byte-identical content.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("source %s is not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	// Match the source's mode and times, same as a metadata-preserving copy.
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod destination: %w", err)
	}
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("set destination times: %w", err)
	}

	return nil
}

// fanoutCopy copies filePath into one folder per matched framework under
// destRoot, using the original basename. Each framework copy is independent:
// a failure is recorded in its outcome and the remaining frameworks are still
// attempted.
func fanoutCopy(destRoot, filePath string, frameworks []string) []CopyOutcome {
	base := filepath.Base(filePath)

	outcomes := make([]CopyOutcome, 0, len(frameworks))
	for _, fw := range frameworks {
		destDir := filepath.Join(destRoot, fw)
		dest := filepath.Join(destDir, base)
		outcome := CopyOutcome{Framework: fw, Dest: dest}

		if err := os.MkdirAll(destDir, 0o755); err != nil {
			outcome.Err = fmt.Errorf("ensure %s: %w", destDir, err)
			outcomes = append(outcomes, outcome)
			continue
		}
		if err := copyFile(filePath, dest); err != nil {
			outcome.Err = fmt.Errorf("copy to %s: %w", dest, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
